package cards

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.scroll = m.grid().scrollFor(m.cursor, m.scroll, m.visibleRows())
		return m, nil

	case renderedMsg:
		if !m.service.Renderer().IsLatest(msg.seq) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if !errors.Is(msg.err, context.Canceled) {
				m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
			}
			return m, nil
		}
		m.result = msg.result
		m.clampCursor()
		return m, nil

	case vaultChangedMsg:
		if !msg.ok {
			m.changes = nil
			return m, nil
		}
		return m, tea.Batch(
			m.render(),
			refreshIndexCmd(m.ctx, m.service, msg.change),
			waitForChangeCmd(m.changes),
		)

	case editorFinishedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Editor error: %v", msg.err)
		}
		return m, m.render()

	case noteCreatedMsg:
		if msg.err != nil {
			var conflict *vault.ConflictError
			if errors.As(msg.err, &conflict) {
				m.statusMessage = fmt.Sprintf("A note named %q already exists", conflict.Path)
			} else {
				m.statusMessage = fmt.Sprintf("Error creating note: %v", msg.err)
			}
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("Created %s", msg.record.Path)
		return m, tea.Batch(m.render(), openInEditor(m.service, msg.record.Path))

	case settingsSavedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error saving settings: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
				m.help.Toggle()
			}
			return m, nil
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m.setSearch("")
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == m.session.Nav.SearchTerm {
		return m, cmd
	}
	next, renderCmd := m.setSearch(m.searchInput.Value())
	return next, tea.Batch(cmd, renderCmd)
}

func (m Model) setSearch(term string) (Model, tea.Cmd) {
	m.session.Nav.SetSearch(term)
	m.cursor, m.scroll = 0, 0
	return m, m.render()
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.grid()
	n := len(m.Cards())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(g.move(m.cursor, n, 0, -1))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(g.move(m.cursor, n, 0, 1))
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(g.move(m.cursor, n, -1, 0))
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(g.move(m.cursor, n, 1, 0))

	case key.Matches(msg, m.keys.Open):
		card, ok := m.selected()
		if !ok {
			return m, nil
		}
		if card.Kind == models.CardFolder {
			return m.navigate(card.Folder.Path)
		}
		return m, openInEditor(m.service, card.File.File.Path)

	case key.Matches(msg, m.keys.Parent):
		if m.session.Nav.AtRoot() {
			return m, nil
		}
		m.session.Nav.Up()
		m.resetView()
		return m, m.render()

	case key.Matches(msg, m.keys.Back):
		if m.session.Nav.SearchTerm != "" {
			m.searchInput.SetValue("")
			return m.setSearch("")
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.session.Nav.SearchTerm)
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NewNote):
		m.statusMessage = ""
		return m, createNoteCmd(m.ctx, m.service, m.session.Nav.CurrentFolder)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.render()

	case key.Matches(msg, m.keys.Sort):
		m.session.Settings.SortBy = nextSortBy(m.session.Settings.SortBy)
		return m.settingsChanged(m.sortStatus())

	case key.Matches(msg, m.keys.Direction):
		if m.session.Settings.SortDirection == models.SortAsc {
			m.session.Settings.SortDirection = models.SortDesc
		} else {
			m.session.Settings.SortDirection = models.SortAsc
		}
		return m.settingsChanged(m.sortStatus())

	case key.Matches(msg, m.keys.ToggleFolders):
		m.session.Settings.ShowFolders = !m.session.Settings.ShowFolders
		return m.settingsChanged(fmt.Sprintf("Folders: %s", onOff(m.session.Settings.ShowFolders)))

	case key.Matches(msg, m.keys.TogglePreview):
		m.session.Settings.ShowPreview = !m.session.Settings.ShowPreview
		return m.settingsChanged(fmt.Sprintf("Preview: %s", onOff(m.session.Settings.ShowPreview)))
	}

	return m, nil
}

func (m Model) navigate(folder string) (Model, tea.Cmd) {
	m.session.Nav.NavigateTo(folder)
	m.resetView()
	return m, m.render()
}

func (m Model) settingsChanged(status string) (Model, tea.Cmd) {
	m.statusMessage = status
	cmds := []tea.Cmd{m.render()}
	if m.save != nil {
		cmds = append(cmds, saveSettingsCmd(m.save, m.session.Settings))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) moveCursor(cursor int) {
	m.cursor = cursor
	m.scroll = m.grid().scrollFor(m.cursor, m.scroll, m.visibleRows())
}

func (m *Model) resetView() {
	m.cursor, m.scroll = 0, 0
	m.statusMessage = ""
}

func (m *Model) clampCursor() {
	n := len(m.Cards())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.scroll = m.grid().scrollFor(m.cursor, m.scroll, m.visibleRows())
}

func nextSortBy(by models.SortBy) models.SortBy {
	switch by {
	case models.SortByName:
		return models.SortByCreated
	case models.SortByCreated:
		return models.SortByModified
	}
	return models.SortByName
}

func (m Model) sortStatus() string {
	return fmt.Sprintf("Sort: %s %s", m.session.Settings.SortBy, m.session.Settings.SortDirection)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
