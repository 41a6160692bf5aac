package vault

import (
	"errors"
	"fmt"
)

// ReadError reports that a note's content could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// StatError reports that a note's timestamps could not be looked up.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string { return fmt.Sprintf("stat %s: %v", e.Path, e.Err) }
func (e *StatError) Unwrap() error { return e.Err }

// ConflictError reports that a note already exists at the requested path.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string { return fmt.Sprintf("note already exists: %s", e.Path) }

// ErrOutsideVault is returned for paths that escape the vault root.
var ErrOutsideVault = errors.New("path escapes vault root")

// IsConflict reports whether err is, or wraps, a *ConflictError.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
