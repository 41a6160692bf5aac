package cmd

import (
	"fmt"
	"os"
	"strings"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-cards/pkg/search"
)

var searchUlog = grovelogging.NewUnifiedLogger("grove-cards.cmd.search")

func NewSearchCmd(env *Env) *cobra.Command {
	var (
		searchFolder string
		searchLimit  int
		searchJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search note contents",
		Long: `Search note titles and bodies in the content index.
Run 'cards reindex' first to build the index.

Examples:
  cards search "release plan"
  cards search todo --folder projects --limit 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := env.Open()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results, err := s.Search(query, &search.Options{Folder: searchFolder, Limit: searchLimit})
			if err != nil {
				return err
			}

			if searchJSON {
				if results == nil {
					results = []search.Hit{}
				}
				return outputJSON(os.Stdout, results)
			}

			if len(results) == 0 {
				searchUlog.Info("No results found").
					Field("query", query).
					Pretty("No results found").
					PrettyOnly().
					Emit()
				return nil
			}

			searchUlog.Info("Search results").
				Field("query", query).
				Field("result_count", len(results)).
				Pretty(fmt.Sprintf("Found %d results:\n", len(results))).
				PrettyOnly().
				Emit()

			for i, hit := range results {
				var prettyStr strings.Builder
				prettyStr.WriteString(fmt.Sprintf("%d. %s\n", i+1, hit.Title))
				prettyStr.WriteString(fmt.Sprintf("   %s", hit.File.Path))
				if hit.Snippet != "" {
					prettyStr.WriteString(fmt.Sprintf("\n   %s", hit.Snippet))
				}
				prettyStr.WriteString("\n")

				searchUlog.Info("Search result").
					Field("query", query).
					Field("result_index", i+1).
					Field("title", hit.Title).
					Field("path", hit.File.Path).
					Pretty(prettyStr.String()).
					PrettyOnly().
					Emit()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&searchFolder, "folder", "", "Only search notes under this folder")
	cmd.Flags().IntVar(&searchLimit, "limit", search.DefaultLimit, "Maximum results")
	cmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")

	return cmd
}
