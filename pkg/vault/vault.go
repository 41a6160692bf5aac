// Package vault defines the file-store collaborators the card view depends
// on, plus a local directory implementation and an in-memory one.
package vault

import (
	"context"

	"github.com/mattsolo1/grove-cards/pkg/models"
)

// NoteExtension is the extension of files treated as notes.
const NoteExtension = ".md"

// Lister snapshots every note in the vault.
type Lister interface {
	ListAllFiles(ctx context.Context) ([]models.FileRecord, error)
}

// Reader returns the raw content of a note. Failures are *ReadError.
type Reader interface {
	ReadFileContent(ctx context.Context, path string) (string, error)
}

// Statter returns fresh timestamps for a note. Failures are *StatError.
type Statter interface {
	StatFile(ctx context.Context, path string) (models.FileStat, error)
}

// Creator creates a new note. An existing path yields *ConflictError.
type Creator interface {
	CreateFile(ctx context.Context, path, content string) (models.FileRecord, error)
}

// Store is the full set of collaborators.
type Store interface {
	Lister
	Reader
	Statter
	Creator
}
