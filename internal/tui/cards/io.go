package cards

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/service"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

// renderedMsg carries the outcome of one render.
type renderedMsg struct {
	seq    uint64
	result *service.Result
	err    error
}

// vaultChangedMsg is sent when the vault watcher reports a change.
type vaultChangedMsg struct {
	change vault.Change
	ok     bool
}

// editorFinishedMsg is sent when the editor closes
type editorFinishedMsg struct{ err error }

// noteCreatedMsg is sent after a note is created
type noteCreatedMsg struct {
	record models.FileRecord
	err    error
}

// settingsSavedMsg is sent after toggled settings were persisted.
type settingsSavedMsg struct{ err error }

func renderCmd(ctx context.Context, svc *service.Service, seq uint64, session service.Session) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.RenderAs(ctx, seq, session)
		return renderedMsg{seq: seq, result: result, err: err}
	}
}

func waitForChangeCmd(changes <-chan vault.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-changes
		return vaultChangedMsg{change: change, ok: ok}
	}
}

func refreshIndexCmd(ctx context.Context, svc *service.Service, change vault.Change) tea.Cmd {
	return func() tea.Msg {
		svc.Refresh(ctx, change)
		return nil
	}
}

func createNoteCmd(ctx context.Context, svc *service.Service, folder string) tea.Cmd {
	return func() tea.Msg {
		record, err := svc.CreateNote(ctx, folder)
		return noteCreatedMsg{record: record, err: err}
	}
}

func saveSettingsCmd(save SettingsSaver, settings models.ViewSettings) tea.Cmd {
	return func() tea.Msg {
		return settingsSavedMsg{err: save(settings)}
	}
}

// openInEditor opens a note in the configured editor
func openInEditor(svc *service.Service, path string) tea.Cmd {
	cmd := svc.EditorCommand(path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}
