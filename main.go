package main

import (
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-cards/cmd"
	"github.com/mattsolo1/grove-cards/cmd/config"
)

func main() {
	env := &cmd.Env{}

	rootCmd := cli.NewStandardCommand(
		"cards",
		"Browse a markdown vault as a grid of cards",
	)
	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig()
		verbose, _ := c.Flags().GetBool("verbose")
		env.Logger = config.NewLogger(verbose)
		return nil
	}
	rootCmd.PersistentPostRunE = func(c *cobra.Command, args []string) error {
		return env.Close()
	}

	tuiCmd := cmd.NewTuiCmd(env)
	rootCmd.RunE = tuiCmd.RunE
	rootCmd.Flags().AddFlagSet(tuiCmd.Flags())

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(cmd.NewListCmd(env))
	rootCmd.AddCommand(cmd.NewNewCmd(env))
	rootCmd.AddCommand(cmd.NewSearchCmd(env))
	rootCmd.AddCommand(cmd.NewReindexCmd(env))
	rootCmd.AddCommand(cmd.NewSettingsCmd())
	rootCmd.AddCommand(cmd.NewServeCmd(env))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
