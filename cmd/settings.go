package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-core/tui/theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-cards/cmd/config"
)

var settingsUlog = grovelogging.NewUnifiedLogger("grove-cards.cmd.settings")

func NewSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change view settings",
	}
	cmd.AddCommand(newSettingsShowCmd(), newSettingsSetCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective view settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(os.Stdout, settings)
			}

			data, err := yaml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("marshal settings: %w", err)
			}
			settingsUlog.Info("View settings").
				Field("sort_by", settings.SortBy).
				Field("sort_direction", settings.SortDirection).
				Pretty(theme.DefaultTheme.Header.Render("View settings") + "\n" + string(data)).
				PrettyOnly().
				Log(context.Background())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one view setting",
		Long: fmt.Sprintf(`Change one view setting and write it to the config file.

Keys: %s

Examples:
  cards settings set sort_by created
  cards settings set show_folders true
  cards settings set preview_length 200`, strings.Join(config.SettingKeys(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.SetSetting(args[0], args[1]); err != nil {
				return err
			}
			settingsUlog.Success("Setting updated").
				Field("key", args[0]).
				Field("value", args[1]).
				Pretty(fmt.Sprintf("%s = %s", args[0], args[1])).
				Log(cmd.Context())
			return nil
		},
	}
}
