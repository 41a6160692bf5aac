package cards

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/service"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

var now = time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *vault.Memory) {
	t.Helper()
	mem := vault.NewMemory()
	mem.SetClock(func() time.Time { return now })
	mem.Put("readme.md", "welcome", now, now)
	mem.Put("work/plan.md", "the plan", now, now.Add(time.Hour))
	mem.Put("work/todo.md", "- [ ] ship", now, now.Add(2*time.Hour))
	mem.Put("work/archive/old.md", "old", now, now)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc, err := service.New(&service.Config{}, mem,
		service.WithLogger(logger),
		service.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	settings := models.DefaultViewSettings()
	settings.ShowFolders = true
	settings.ShowBreadcrumbs = true

	m := New(context.Background(), svc, settings)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = run(t, m, m.render())
	return m, mem
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	return send(t, m, cmd())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func titles(m Model) []string {
	var out []string
	for _, c := range m.Cards() {
		out = append(out, c.Title())
	}
	return out
}

func TestModelInitialRender(t *testing.T) {
	m, _ := newTestModel(t)
	// Root is flattened and has no folder cards; modified desc.
	assert.Equal(t, []string{"todo", "plan", "readme", "old"}, titles(m))
	assert.Contains(t, m.View(), "Vault Cards")
}

func TestModelOpenFolderAndGoUp(t *testing.T) {
	m, _ := newTestModel(t)

	m.session.Nav.NavigateTo("work")
	m = run(t, m, m.render())
	assert.Equal(t, []string{"archive", "todo", "plan"}, titles(m))
	assert.Contains(t, m.View(), "work")

	// Enter on the folder card navigates into it.
	next, cmd := m.Update(key("enter"))
	m = run(t, next.(Model), cmd)
	assert.Equal(t, "work/archive", m.Session().Nav.CurrentFolder)
	assert.Equal(t, []string{"old"}, titles(m))

	next, cmd = m.Update(key("-"))
	m = run(t, next.(Model), cmd)
	assert.Equal(t, "work", m.Session().Nav.CurrentFolder)
	assert.Equal(t, 0, m.Cursor())
}

func TestModelCursorMovement(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, key("l"))
	assert.Equal(t, 1, m.Cursor())
	m = send(t, m, key("h"))
	assert.Equal(t, 0, m.Cursor())
	m = send(t, m, key("h"))
	assert.Equal(t, 0, m.Cursor())
}

func TestModelSearch(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(key("/"))
	m = next.(Model)
	require.NotNil(t, cmd)

	for _, r := range "PL" {
		next, cmd = m.Update(key(string(r)))
		m = next.(Model)
	}
	// The last batched render is the only current one.
	m = run(t, m, m.render())
	assert.Equal(t, "PL", m.Session().Nav.SearchTerm)
	assert.Equal(t, []string{"plan"}, titles(m))

	next, cmd = m.Update(key("esc"))
	m = run(t, next.(Model), cmd)
	assert.Equal(t, "", m.Session().Nav.SearchTerm)
	assert.Len(t, m.Cards(), 4)
}

func TestModelDiscardsStaleRenders(t *testing.T) {
	m, _ := newTestModel(t)

	stale := m.render()
	m.session.Nav.NavigateTo("work/archive")
	current := m.render()

	m = run(t, m, current)
	assert.Equal(t, []string{"old"}, titles(m))

	m = run(t, m, stale)
	assert.Equal(t, []string{"old"}, titles(m), "an older render must not replace a newer one")
}

func TestModelNewNoteConflict(t *testing.T) {
	m, mem := newTestModel(t)
	_, err := mem.CreateFile(context.Background(), service.NewNoteName(now), "taken")
	require.NoError(t, err)

	next, cmd := m.Update(key("n"))
	m = run(t, next.(Model), cmd)
	assert.Contains(t, m.StatusMessage(), "already exists")
	assert.Contains(t, m.View(), "already exists")
}

func TestModelToggleSettings(t *testing.T) {
	m, _ := newTestModel(t)

	var saved []models.ViewSettings
	m.save = func(s models.ViewSettings) error {
		saved = append(saved, s)
		return nil
	}

	next, cmd := m.Update(key("s"))
	m = next.(Model)
	assert.Equal(t, models.SortByName, m.Session().Settings.SortBy)
	assert.True(t, strings.HasPrefix(m.StatusMessage(), "Sort: name"))

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		m = send(t, m, c())
	}
	assert.Equal(t, []string{"todo", "readme", "plan", "old"}, titles(m))
	require.Len(t, saved, 1)
	assert.Equal(t, models.SortByName, saved[0].SortBy)

	next, _ = m.Update(key("S"))
	m = next.(Model)
	assert.Equal(t, models.SortAsc, m.Session().Settings.SortDirection)

	next, _ = m.Update(key("p"))
	m = next.(Model)
	assert.False(t, m.Session().Settings.ShowPreview)
	assert.Equal(t, "Preview: off", m.StatusMessage())
}

func TestModelVaultChange(t *testing.T) {
	m, mem := newTestModel(t)
	changes := make(chan vault.Change, 1)
	m.changes = changes

	mem.Put("fresh.md", "new", now, now.Add(3*time.Hour))
	changes <- vault.Change{Paths: []string{"fresh.md"}}

	msg := waitForChangeCmd(changes)()
	next, cmd := m.Update(msg)
	m = next.(Model)
	require.NotNil(t, cmd)

	m = run(t, m, m.render())
	assert.Equal(t, "fresh", titles(m)[0])

	close(changes)
	m = send(t, m, waitForChangeCmd(changes)())
	assert.Nil(t, m.changes)
}
