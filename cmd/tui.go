package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-cards/cmd/config"
	"github.com/mattsolo1/grove-cards/internal/tui/cards"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

// NewTuiCmd creates the `cards tui` command.
func NewTuiCmd(env *Env) *cobra.Command {
	var (
		folder  string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the vault as a grid of cards",
		Long: `Launch an interactive card grid for the vault.
Folders open with enter, '-' goes up, '/' searches and 'n' creates a note
in the current folder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			svc, err := env.Open()
			if err != nil {
				return err
			}
			settings, err := config.LoadSettings()
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			opts := []cards.Option{cards.WithSettingsSaver(config.SaveSettings)}
			if !noWatch {
				changes, err := env.Vault.Watch(ctx, vault.DefaultDebounce)
				if err != nil {
					env.Logger.WithError(err).Warn("vault watcher unavailable, live refresh disabled")
				} else {
					opts = append(opts, cards.WithChanges(changes))
				}
			}

			model := cards.New(ctx, svc, settings, opts...)
			if folder != "" {
				model = model.At(folder)
			}
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Folder to open initially")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not refresh when vault files change")

	return cmd
}
