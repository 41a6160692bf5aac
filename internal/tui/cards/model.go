// Package cards is the terminal card grid for browsing a vault.
package cards

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/components/help"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/service"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

// SettingsSaver persists settings changed from the grid.
type SettingsSaver func(models.ViewSettings) error

// Model is the main model for the card grid TUI
type Model struct {
	ctx     context.Context
	service *service.Service
	session service.Session
	changes <-chan vault.Change
	save    SettingsSaver

	result  *service.Result
	cursor  int
	scroll  int
	loading bool

	keys        KeyMap
	help        help.Model
	searchInput textinput.Model
	searching   bool
	width       int
	height      int

	statusMessage string
}

// Option configures the model.
type Option func(*Model)

// WithChanges re-renders the grid whenever the vault reports a change.
func WithChanges(changes <-chan vault.Change) Option {
	return func(m *Model) { m.changes = changes }
}

// WithSettingsSaver persists settings toggled from the grid.
func WithSettingsSaver(save SettingsSaver) Option {
	return func(m *Model) { m.save = save }
}

// New creates a new TUI model.
func New(ctx context.Context, svc *service.Service, settings models.ViewSettings, opts ...Option) Model {
	helpModel := help.NewBuilder().
		WithKeys(keys).
		WithTitle("Vault Cards - Help").
		Build()

	ti := textinput.New()
	ti.Placeholder = "Search cards..."
	ti.CharLimit = 100
	ti.Prompt = "/ "

	m := Model{
		ctx:         ctx,
		service:     svc,
		session:     service.NewSession(settings),
		keys:        keys,
		help:        helpModel,
		searchInput: ti,
		loading:     true,
		width:       80,
		height:      24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init renders the root folder and starts listening for vault changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.render()}
	if m.changes != nil {
		cmds = append(cmds, waitForChangeCmd(m.changes))
	}
	return tea.Batch(cmds...)
}

// Session returns the current navigation state and settings.
func (m Model) Session() service.Session {
	return m.session
}

// Cards returns the cards currently displayed.
func (m Model) Cards() []models.Card {
	if m.result == nil {
		return nil
	}
	return m.result.Cards
}

// Cursor returns the index of the selected card.
func (m Model) Cursor() int {
	return m.cursor
}

// StatusMessage returns the message shown in the status line.
func (m Model) StatusMessage() string {
	return m.statusMessage
}

// render issues the next sequence number synchronously so that a render
// requested later always supersedes one requested earlier.
func (m Model) render() tea.Cmd {
	seq := m.service.Renderer().Begin()
	return renderCmd(m.ctx, m.service, seq, m.session)
}

func (m Model) selected() (models.Card, bool) {
	cards := m.Cards()
	if m.cursor < 0 || m.cursor >= len(cards) {
		return models.Card{}, false
	}
	return cards[m.cursor], true
}

func (m Model) grid() grid {
	return newGrid(m.session.Settings, m.width)
}

// At returns the model opened at folder instead of the root.
func (m Model) At(folder string) Model {
	m.session.Nav.NavigateTo(folder)
	return m
}
