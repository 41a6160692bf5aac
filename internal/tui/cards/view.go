package cards

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/navigation"
)

// chromeLines is the number of lines outside the grid: header, breadcrumb
// or search line, blank spacers, status and help.
const chromeLines = 7

func (m Model) View() string {
	if m.help.ShowAll {
		return m.help.View()
	}

	header := theme.DefaultTheme.Header.Render("Vault Cards")
	if m.result != nil {
		header += " " + theme.DefaultTheme.Muted.Render(fmt.Sprintf("(%d cards)", len(m.result.Cards)))
	}

	var lines []string
	lines = append(lines, header)
	if m.session.Settings.ShowBreadcrumbs {
		lines = append(lines, renderBreadcrumbs(m.session.Nav.Breadcrumbs()))
	}
	if m.searching || m.session.Nav.SearchTerm != "" {
		lines = append(lines, m.searchInput.View())
	}

	lines = append(lines, "", m.renderGrid(), "")

	if m.statusMessage != "" {
		lines = append(lines, theme.DefaultTheme.Info.Render(m.statusMessage))
	}
	lines = append(lines, m.help.View())

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) visibleRows() int {
	return m.grid().visibleRows(m.height - chromeLines)
}

func (m Model) renderGrid() string {
	if m.loading && m.result == nil {
		return "Loading..."
	}
	cards := m.Cards()
	if len(cards) == 0 {
		if m.session.Nav.SearchTerm != "" {
			return theme.DefaultTheme.Muted.Render("No matching cards.")
		}
		return theme.DefaultTheme.Muted.Render("This folder has no notes.")
	}

	g := m.grid()
	visible := m.visibleRows()
	first := m.scroll
	last := min(first+visible, g.rows(len(cards)))

	var rows []string
	for row := first; row < last; row++ {
		var tiles []string
		for col := 0; col < g.columns; col++ {
			i := row*g.columns + col
			if i >= len(cards) {
				break
			}
			if col > 0 {
				tiles = append(tiles, strings.Repeat(" ", g.gapCols))
			}
			tiles = append(tiles, m.renderCard(cards[i], g, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
		for i := 0; i < g.gapRows && row < last-1; i++ {
			rows = append(rows, "")
		}
	}

	if total := g.rows(len(cards)); total > visible {
		rows = append(rows, lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf(" (rows %d-%d of %d)", first+1, last, total)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(card models.Card, g grid, selected bool) string {
	border := theme.DefaultTheme.Colors.Blue
	if selected {
		border = theme.DefaultTheme.Colors.Orange
	}
	innerWidth := g.cardCols - 4
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(g.cardCols - 2).
		Height(g.cardRows - 2).
		MaxHeight(g.cardRows)

	var body []string
	title := lipgloss.NewStyle().Bold(true).MaxWidth(innerWidth)

	switch card.Kind {
	case models.CardFolder:
		body = append(body,
			title.Foreground(theme.DefaultTheme.Colors.Cyan).Render(theme.IconFolder+" "+card.Folder.Name),
			theme.DefaultTheme.Muted.Render(fileCount(card.Folder.ChildFileCount)),
		)
	case models.CardFile:
		fc := card.File
		body = append(body, title.Render(theme.IconNote+" "+fc.File.Basename))
		if fc.DisplayDate != nil {
			body = append(body, theme.DefaultTheme.Muted.Render(fc.DisplayDate.Format(m.session.Settings.DateFormat)))
		}
		if fc.PreviewText != nil && *fc.PreviewText != "" {
			body = append(body, "", lipgloss.NewStyle().Width(innerWidth).Render(*fc.PreviewText))
		}
	}

	return style.Render(strings.Join(body, "\n"))
}

func renderBreadcrumbs(crumbs []navigation.Crumb) string {
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			parts[i] = theme.DefaultTheme.Highlight.Render(c.Label)
		} else {
			parts[i] = theme.DefaultTheme.Muted.Render(c.Label)
		}
	}
	return strings.Join(parts, theme.DefaultTheme.Muted.Render(" / "))
}

func fileCount(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}
