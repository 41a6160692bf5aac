package service

import (
	"time"

	"github.com/mattsolo1/grove-cards/pkg/frontmatter"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

// NewNotePrefix starts the name of every note created from the card view.
const NewNotePrefix = "New Note"

// NewNoteName returns the file name for a note created at now. The time is
// rendered without colons so the name is valid on every filesystem.
func NewNoteName(now time.Time) string {
	return NewNotePrefix + " " + now.Format("2006-01-02 150405") + vault.NoteExtension
}

// NewNoteContent returns the initial content of a new note.
func NewNoteContent(now time.Time) string {
	ts := frontmatter.FormatTimestamp(now)
	fm := &frontmatter.Frontmatter{
		Aliases:  []string{},
		Tags:     []string{},
		Created:  ts,
		Modified: ts,
	}
	return frontmatter.BuildContent(fm, "")
}
