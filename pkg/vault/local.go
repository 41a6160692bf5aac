package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-cards/pkg/frontmatter"
	"github.com/mattsolo1/grove-cards/pkg/models"
)

// Local is a Store backed by a directory on disk.
type Local struct {
	root   string
	logger logrus.FieldLogger
}

// NewLocal opens the vault rooted at dir.
func NewLocal(dir string, logger logrus.FieldLogger) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", abs)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Local{root: abs, logger: logger}, nil
}

// Root returns the absolute vault directory.
func (l *Local) Root() string {
	return l.root
}

// ListAllFiles walks the vault for markdown notes. Dot-directories are skipped.
func (l *Local) ListAllFiles(ctx context.Context) ([]models.FileRecord, error) {
	var files []models.FileRecord
	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.WithError(err).WithField("path", p).Debug("skipping unreadable entry")
			if d != nil && d.IsDir() && p != l.root {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p != l.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), NoteExtension) {
			return nil
		}

		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return nil
		}
		stat, err := l.stat(p)
		if err != nil {
			l.logger.WithError(err).WithField("path", rel).Debug("skipping note without stat")
			return nil
		}
		files = append(files, models.NewFileRecord(filepath.ToSlash(rel), stat.CreatedAt, stat.ModifiedAt))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}
	return files, nil
}

// ReadFileContent reads a note's raw text.
func (l *Local) ReadFileContent(ctx context.Context, path string) (string, error) {
	abs, err := l.resolve(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	return string(data), nil
}

// StatFile returns the note's timestamps. The created time comes from the
// frontmatter "created" field when present, since most filesystems do not
// expose birth time; otherwise it falls back to the modification time.
func (l *Local) StatFile(ctx context.Context, path string) (models.FileStat, error) {
	abs, err := l.resolve(path)
	if err != nil {
		return models.FileStat{}, &StatError{Path: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return models.FileStat{}, &StatError{Path: path, Err: err}
	}
	stat, err := l.stat(abs)
	if err != nil {
		return models.FileStat{}, &StatError{Path: path, Err: err}
	}
	return stat, nil
}

// CreateFile writes a new note, refusing to overwrite an existing one.
func (l *Local) CreateFile(ctx context.Context, path, content string) (models.FileRecord, error) {
	abs, err := l.resolve(path)
	if err != nil {
		return models.FileRecord{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.FileRecord{}, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return models.FileRecord{}, fmt.Errorf("ensure directories: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return models.FileRecord{}, &ConflictError{Path: path}
		}
		return models.FileRecord{}, fmt.Errorf("create note: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return models.FileRecord{}, fmt.Errorf("write note: %w", err)
	}
	if err := f.Close(); err != nil {
		return models.FileRecord{}, fmt.Errorf("close note: %w", err)
	}

	stat, err := l.stat(abs)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("stat new note: %w", err)
	}
	return models.NewFileRecord(path, stat.CreatedAt, stat.ModifiedAt), nil
}

func (l *Local) stat(abs string) (models.FileStat, error) {
	info, err := os.Stat(abs)
	if err != nil {
		return models.FileStat{}, err
	}
	if info.IsDir() {
		return models.FileStat{}, fmt.Errorf("%s is a directory", abs)
	}

	stat := models.FileStat{CreatedAt: info.ModTime(), ModifiedAt: info.ModTime()}

	data, err := os.ReadFile(abs)
	if err != nil {
		return stat, nil
	}
	fm, _, err := frontmatter.Parse(string(data))
	if err != nil || fm == nil {
		return stat, nil
	}
	if created, err := frontmatter.ParseTimestamp(fm.Created); err == nil {
		stat.CreatedAt = created
	}
	return stat, nil
}

// resolve maps a vault-relative path to an absolute one inside the root.
func (l *Local) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(path, "/")))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrOutsideVault
	}
	return filepath.Join(l.root, clean), nil
}
