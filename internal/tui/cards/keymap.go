package cards

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattsolo1/grove-core/tui/keymap"
)

// KeyMap defines the keybindings for the card grid
type KeyMap struct {
	keymap.Base
	Left          key.Binding
	Right         key.Binding
	Open          key.Binding
	Parent        key.Binding
	Search        key.Binding
	NewNote       key.Binding
	Sort          key.Binding
	Direction     key.Binding
	ToggleFolders key.Binding
	TogglePreview key.Binding
	Refresh       key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Parent, k.Search, k.NewNote, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	baseHelp := k.Base.FullHelp()
	return append(baseHelp, []key.Binding{
		k.Left,
		k.Right,
		k.Open,
		k.Parent,
	}, []key.Binding{
		k.Search,
		k.NewNote,
		k.Refresh,
	}, []key.Binding{
		k.Sort,
		k.Direction,
		k.ToggleFolders,
		k.TogglePreview,
	})
}

var keys = KeyMap{
	Base: keymap.NewBase(),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open card"),
	),
	Parent: key.NewBinding(
		key.WithKeys("backspace", "-"),
		key.WithHelp("-", "parent folder"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NewNote: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new note"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "cycle sort"),
	),
	Direction: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "reverse sort"),
	),
	ToggleFolders: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "toggle folders"),
	),
	TogglePreview: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "toggle preview"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
}
