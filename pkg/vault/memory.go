package vault

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mattsolo1/grove-cards/pkg/models"
)

// errInjected is returned for paths marked with FailRead or FailStat.
var errInjected = errors.New("injected failure")

type memNote struct {
	content string
	stat    models.FileStat
}

// Memory is an in-memory Store, used by tests and the demo vault.
type Memory struct {
	mu        sync.RWMutex
	notes     map[string]memNote
	failRead  map[string]bool
	failStat  map[string]bool
	now       func() time.Time
	statCalls int
}

// NewMemory returns an empty in-memory vault.
func NewMemory() *Memory {
	return &Memory{
		notes:    make(map[string]memNote),
		failRead: make(map[string]bool),
		failStat: make(map[string]bool),
		now:      time.Now,
	}
}

// Put adds or replaces a note.
func (m *Memory) Put(path, content string, created, modified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[models.CleanFolder(path)] = memNote{
		content: content,
		stat:    models.FileStat{CreatedAt: created, ModifiedAt: modified},
	}
}

// FailRead makes subsequent reads of path fail.
func (m *Memory) FailRead(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRead[path] = true
}

// FailStat makes subsequent stat lookups of path fail.
func (m *Memory) FailStat(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failStat[path] = true
}

// SetClock overrides the time source used for created notes.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// StatCalls returns how many StatFile calls were served.
func (m *Memory) StatCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statCalls
}

// ListAllFiles returns the notes sorted by path.
func (m *Memory) ListAllFiles(ctx context.Context) ([]models.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]models.FileRecord, 0, len(m.notes))
	for p, n := range m.notes {
		files = append(files, models.NewFileRecord(p, n.stat.CreatedAt, n.stat.ModifiedAt))
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ReadFileContent returns the stored content.
func (m *Memory) ReadFileContent(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failRead[path] {
		return "", &ReadError{Path: path, Err: errInjected}
	}
	n, ok := m.notes[path]
	if !ok {
		return "", &ReadError{Path: path, Err: errors.New("not found")}
	}
	return n.content, nil
}

// StatFile returns the stored timestamps.
func (m *Memory) StatFile(ctx context.Context, path string) (models.FileStat, error) {
	if err := ctx.Err(); err != nil {
		return models.FileStat{}, &StatError{Path: path, Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statCalls++
	if m.failStat[path] {
		return models.FileStat{}, &StatError{Path: path, Err: errInjected}
	}
	n, ok := m.notes[path]
	if !ok {
		return models.FileStat{}, &StatError{Path: path, Err: errors.New("not found")}
	}
	return n.stat, nil
}

// CreateFile stores a new note, failing with *ConflictError when it exists.
func (m *Memory) CreateFile(ctx context.Context, path, content string) (models.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.FileRecord{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	path = models.CleanFolder(path)
	if _, exists := m.notes[path]; exists {
		return models.FileRecord{}, &ConflictError{Path: path}
	}
	now := m.now()
	m.notes[path] = memNote{content: content, stat: models.FileStat{CreatedAt: now, ModifiedAt: now}}
	return models.NewFileRecord(path, now, now), nil
}
