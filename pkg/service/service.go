// Package service is the shell around the card pipeline: it owns the vault,
// the search index and render sequencing, and is shared by the TUI, the HTTP
// API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/order"
	"github.com/mattsolo1/grove-cards/pkg/search"
	"github.com/mattsolo1/grove-cards/pkg/vault"
	"github.com/mattsolo1/grove-cards/pkg/viewmodel"
)

// IndexFileName is the search database name inside DataDir.
const IndexFileName = "index.db"

// Service is the core card service
type Service struct {
	Store    vault.Store
	Index    *search.Index
	Config   *Config
	builder  *viewmodel.Builder
	renderer *Renderer
	logger   logrus.FieldLogger
	now      func() time.Time
}

// Config holds service configuration
type Config struct {
	// DataDir holds the search index. Search is disabled when empty.
	DataDir     string
	Editor      string
	Concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the diagnostics logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the clock used to name new notes.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a service over store.
func New(config *Config, store vault.Store, opts ...Option) (*Service, error) {
	if config == nil {
		config = &Config{}
	}
	s := &Service{
		Store:    store,
		Config:   config,
		renderer: &Renderer{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		s.logger = l
	}

	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = order.DefaultStatConcurrency
	}
	s.builder = viewmodel.New(store, viewmodel.WithLogger(s.logger), viewmodel.WithConcurrency(concurrency))

	if config.DataDir != "" {
		if err := os.MkdirAll(config.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
		index, err := search.NewIndex(filepath.Join(config.DataDir, IndexFileName))
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		s.Index = index
	}

	return s, nil
}

// Renderer returns the sequencer shared by every render of this service.
func (s *Service) Renderer() *Renderer {
	return s.renderer
}

// Render snapshots the vault and builds the cards for the session. The
// result carries a sequence number; callers drop results that are no
// longer Renderer().IsLatest.
func (s *Service) Render(ctx context.Context, session Session) (*Result, error) {
	return s.RenderAs(ctx, s.renderer.Begin(), session)
}

// RenderAs renders under a sequence number the caller obtained from
// Renderer().Begin, so that issue order matches request order even when
// renders run concurrently.
func (s *Service) RenderAs(ctx context.Context, seq uint64, session Session) (*Result, error) {
	files, err := s.Store.ListAllFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vault files: %w", err)
	}

	cards, err := s.builder.Build(ctx, files, session.Settings, session.Nav)
	if err != nil {
		return nil, fmt.Errorf("build cards: %w", err)
	}

	return &Result{
		Seq:         seq,
		Folder:      models.CleanFolder(session.Nav.CurrentFolder),
		Breadcrumbs: session.Nav.Breadcrumbs(),
		Cards:       cards,
		VaultFiles:  len(files),
	}, nil
}

// CreateNote creates an empty timestamped note in folder. An existing file
// of the same name fails with a *vault.ConflictError.
func (s *Service) CreateNote(ctx context.Context, folder string) (models.FileRecord, error) {
	now := s.now()
	path := models.JoinPath(folder, NewNoteName(now))

	content := NewNoteContent(now)
	record, err := s.Store.CreateFile(ctx, path, content)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("create note: %w", err)
	}

	if s.Index != nil {
		if err := s.Index.IndexFile(record, content); err != nil {
			s.logger.WithError(err).WithField("path", record.Path).Warn("failed to index note")
		}
	}

	return record, nil
}

// ErrSearchDisabled is returned by search operations when no data dir is configured.
var ErrSearchDisabled = errors.New("search index is not configured")

// Search queries the content index.
func (s *Service) Search(query string, opts *search.Options) ([]search.Hit, error) {
	if s.Index == nil {
		return nil, ErrSearchDisabled
	}
	return s.Index.Search(query, opts)
}

// Reindex brings the search index in line with the vault and returns the
// number of notes indexed. Notes that cannot be read are skipped.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, ErrSearchDisabled
	}

	files, err := s.Store.ListAllFiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("list vault files: %w", err)
	}

	present := make(map[string]bool, len(files))
	indexed := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		present[f.Path] = true
		content, err := s.Store.ReadFileContent(ctx, f.Path)
		if err != nil {
			s.logger.WithError(err).WithField("path", f.Path).Warn("skipping unreadable note")
			continue
		}
		if err := s.Index.IndexFile(f, content); err != nil {
			return indexed, fmt.Errorf("index %s: %w", f.Path, err)
		}
		indexed++
	}

	paths, err := s.Index.Paths()
	if err != nil {
		return indexed, fmt.Errorf("list indexed paths: %w", err)
	}
	for _, p := range paths {
		if !present[p] {
			if err := s.Index.RemoveFile(p); err != nil {
				return indexed, fmt.Errorf("remove %s: %w", p, err)
			}
		}
	}

	return indexed, nil
}

// Refresh reindexes the notes named by a vault change. Paths that are no
// longer readable notes are dropped from the index.
func (s *Service) Refresh(ctx context.Context, change vault.Change) {
	if s.Index == nil {
		return
	}
	for _, p := range change.Paths {
		if filepath.Ext(p) != vault.NoteExtension {
			continue
		}
		stat, err := s.Store.StatFile(ctx, p)
		if err != nil {
			_ = s.Index.RemoveFile(p)
			continue
		}
		content, err := s.Store.ReadFileContent(ctx, p)
		if err != nil {
			_ = s.Index.RemoveFile(p)
			continue
		}
		if err := s.Index.IndexFile(models.NewFileRecord(p, stat.CreatedAt, stat.ModifiedAt), content); err != nil {
			s.logger.WithError(err).WithField("path", p).Warn("failed to index note")
		}
	}
}

// rooted is implemented by stores backed by a directory.
type rooted interface {
	Root() string
}

// EditorCommand returns the command that opens the vault note at path.
func (s *Service) EditorCommand(path string) *exec.Cmd {
	if r, ok := s.Store.(rooted); ok {
		path = filepath.Join(r.Root(), filepath.FromSlash(path))
	}
	return EditorCommand(s.Config.Editor, path)
}

// EditorCommand builds the command opening path in editor, falling back to
// $EDITOR and then vim.
func EditorCommand(editor, path string) *exec.Cmd {
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}
	return exec.Command(editor, path)
}

// Close releases the search index.
func (s *Service) Close() error {
	if s.Index != nil {
		return s.Index.Close()
	}
	return nil
}
