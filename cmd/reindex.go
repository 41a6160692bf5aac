package cmd

import (
	"fmt"
	"time"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"
)

var reindexUlog = grovelogging.NewUnifiedLogger("grove-cards.cmd.reindex")

func NewReindexCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the content search index",
		Long:  "Index every note in the vault and drop index entries for notes that no longer exist.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := env.Open()
			if err != nil {
				return err
			}

			start := time.Now()
			n, err := s.Reindex(ctx)
			if err != nil {
				return fmt.Errorf("reindex: %w", err)
			}

			reindexUlog.Success("Index rebuilt").
				Field("notes", n).
				Field("duration", time.Since(start).String()).
				Pretty(fmt.Sprintf("Indexed %d notes in %s", n, time.Since(start).Round(time.Millisecond))).
				Log(ctx)
			return nil
		},
	}
}
