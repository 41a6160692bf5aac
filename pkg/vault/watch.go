package vault

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of filesystem events into one change.
const DefaultDebounce = 250 * time.Millisecond

// Change is emitted after the vault contents changed.
type Change struct {
	Paths []string
}

// Watch observes the vault directory tree and emits a Change for each burst
// of note or folder events. The channel is closed when ctx is done.
func (l *Local) Watch(ctx context.Context, debounce time.Duration) (<-chan Change, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := l.addTree(watcher, l.root); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan Change, 1)
	go l.watchLoop(ctx, watcher, debounce, out)
	return out, nil
}

func (l *Local) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, out chan<- Change) {
	defer close(out)
	defer watcher.Close()

	var (
		pending []string
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !l.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if err := l.addTree(watcher, ev.Name); err != nil {
					l.logger.WithError(err).WithField("path", ev.Name).Debug("could not watch new entry")
				}
			}
			if rel, err := filepath.Rel(l.root, ev.Name); err == nil {
				pending = append(pending, filepath.ToSlash(rel))
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.logger.WithError(err).Warn("vault watcher error")

		case <-fire:
			change := Change{Paths: pending}
			pending = nil
			timer = nil
			fire = nil
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}
}

// relevant filters out events for non-note files and dot-directories.
func (l *Local) relevant(ev fsnotify.Event) bool {
	rel, err := filepath.Rel(l.root, ev.Name)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return false
		}
	}
	ext := filepath.Ext(ev.Name)
	// Folder events carry no extension; renames and removals cannot be
	// stat'ed any more, so treat extension-less names as folders.
	return ext == "" || strings.EqualFold(ext, NoteExtension)
}

// addTree registers dir and all its non-hidden subdirectories.
func (l *Local) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != l.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
