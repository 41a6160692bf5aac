package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-core/tui/theme"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-cards/cmd/config"
	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/navigation"
	"github.com/mattsolo1/grove-cards/pkg/service"
)

var listUlog = grovelogging.NewUnifiedLogger("grove-cards.cmd.list")

func NewListCmd(env *Env) *cobra.Command {
	var (
		listSearch    string
		listJSON      bool
		listSort      string
		listDirection string
		listFolders   bool
	)

	cmd := &cobra.Command{
		Use:     "list [folder]",
		Short:   "List the cards of a folder",
		Aliases: []string{"ls"},
		Long: `List the cards the grid would show for a folder.

Examples:
  cards list                   # Cards at the vault root
  cards list projects/alpha    # Cards in a folder
  cards list -s plan           # Only cards whose name contains "plan"
  cards list --sort name --direction asc --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := env.Open()
			if err != nil {
				return err
			}

			settings, err := config.LoadSettings()
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if listSort != "" {
				if settings.SortBy, err = models.ParseSortBy(listSort); err != nil {
					return err
				}
			}
			if listDirection != "" {
				if settings.SortDirection, err = models.ParseSortDirection(listDirection); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("folders") {
				settings.ShowFolders = listFolders
			}

			nav := navigation.New()
			if len(args) > 0 {
				nav.NavigateTo(args[0])
			}
			nav.SetSearch(listSearch)

			result, err := s.Render(ctx, service.Session{Nav: nav, Settings: settings})
			if err != nil {
				return err
			}

			if listJSON {
				return outputJSON(os.Stdout, result)
			}

			if len(result.Cards) == 0 {
				listUlog.Info("No cards found").
					Field("folder", result.Folder).
					Field("search", listSearch).
					Pretty("No cards found").
					PrettyOnly().
					Log(ctx)
				return nil
			}

			printCardsTable(os.Stdout, result, settings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only cards whose name contains this term")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&listSort, "sort", "", "Sort by name, created or modified (overrides settings)")
	cmd.Flags().StringVar(&listDirection, "direction", "", "Sort direction asc or desc (overrides settings)")
	cmd.Flags().BoolVar(&listFolders, "folders", false, "Show folder cards (overrides settings)")

	return cmd
}

func printCardsTable(out io.Writer, result *service.Result, settings models.ViewSettings) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if settings.ShowBreadcrumbs {
		fmt.Fprintln(w, crumbTrail(result.Breadcrumbs))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "KIND\tNAME\tDATE\tPREVIEW")
	fmt.Fprintln(w, "----\t-----------------------------\t------------\t----------------------------------------")

	for _, card := range result.Cards {
		switch card.Kind {
		case models.CardFolder:
			fmt.Fprintf(w, "%s\t%s\t\t%d notes\n", theme.IconFolder, truncateString(card.Folder.Name, 29), card.Folder.ChildFileCount)
		case models.CardFile:
			date := ""
			if card.File.DisplayDate != nil {
				date = card.File.DisplayDate.Format(settings.DateFormat)
			}
			preview := ""
			if card.File.PreviewText != nil {
				preview = truncateString(*card.File.PreviewText, 40)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", theme.IconNote, truncateString(card.File.File.Basename, 29), date, preview)
		}
	}

	w.Flush()
}

func crumbTrail(crumbs []navigation.Crumb) string {
	trail := ""
	for i, c := range crumbs {
		if i > 0 {
			trail += " / "
		}
		trail += c.Label
	}
	return trail
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func outputJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
