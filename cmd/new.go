package cmd

import (
	"fmt"
	"os"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-cards/pkg/vault"
)

var newUlog = grovelogging.NewUnifiedLogger("grove-cards.cmd.new")

func NewNewCmd(env *Env) *cobra.Command {
	var noEdit bool

	cmd := &cobra.Command{
		Use:   "new [folder]",
		Short: "Create a new note",
		Long: `Create an empty timestamped note ("New Note <date> <time>.md") in a
vault folder and open it in the editor.

Examples:
  cards new                  # Note at the vault root
  cards new projects/alpha   # Note in a folder
  cards new --no-edit        # Create without opening the editor`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := env.Open()
			if err != nil {
				return err
			}

			folder := ""
			if len(args) > 0 {
				folder = args[0]
			}

			record, err := s.CreateNote(ctx, folder)
			if err != nil {
				if vault.IsConflict(err) {
					return fmt.Errorf("a note with this name already exists, try again in a second: %w", err)
				}
				return err
			}

			newUlog.Success("Created note").
				Field("path", record.Path).
				Pretty(fmt.Sprintf("Created %s", record.Path)).
				Log(ctx)

			if noEdit {
				return nil
			}

			editor := s.EditorCommand(record.Path)
			editor.Stdin = os.Stdin
			editor.Stdout = os.Stdout
			editor.Stderr = os.Stderr
			if err := editor.Run(); err != nil {
				return fmt.Errorf("open editor: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noEdit, "no-edit", false, "Do not open the note in the editor")

	return cmd
}
