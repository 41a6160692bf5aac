package order

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

// DefaultStatConcurrency bounds the number of stat lookups in flight.
const DefaultStatConcurrency = 16

// Entry pairs a file with the outcome of its stat lookup. Stat is nil when
// no lookup was made; StatErr is set when the lookup failed.
type Entry struct {
	File    models.FileRecord
	Stat    *models.FileStat
	StatErr error
}

// Files returns the records of entries in order.
func Files(entries []Entry) []models.FileRecord {
	out := make([]models.FileRecord, len(entries))
	for i, e := range entries {
		out[i] = e.File
	}
	return out
}

// Lookup stats every file concurrently, at most limit at a time. A failed
// lookup is recorded on its Entry and never fails the batch; only a done
// context does.
func Lookup(ctx context.Context, files []models.FileRecord, statter vault.Statter, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultStatConcurrency
	}
	entries := make([]Entry, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, f := range files {
		i, f := i, f
		entries[i].File = f
		g.Go(func() error {
			stat, err := statter.StatFile(gctx, f.Path)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				entries[i].StatErr = err
				return nil
			}
			entries[i].Stat = &stat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Sorter orders files by the configured key.
type Sorter struct {
	Statter     vault.Statter
	Concurrency int
}

// Sort orders files by key and direction. Name sorting needs no lookups;
// date sorting stats every file through the Statter. Files whose stat fails
// sort as if their key were the lowest possible value. Ties keep input order.
func (s Sorter) Sort(ctx context.Context, files []models.FileRecord, by models.SortBy, dir models.SortDirection) ([]Entry, error) {
	var entries []Entry
	if by == models.SortByName {
		entries = make([]Entry, len(files))
		for i, f := range files {
			entries[i].File = f
		}
	} else {
		if s.Statter == nil {
			return nil, errors.New("date sort requires a statter")
		}
		var err error
		entries, err = Lookup(ctx, files, s.Statter, s.Concurrency)
		if err != nil {
			return nil, err
		}
	}
	SortEntries(entries, by, dir)
	return entries, nil
}

// SortEntries sorts entries in place using whatever stat results they carry.
func SortEntries(entries []Entry, by models.SortBy, dir models.SortDirection) {
	sign := 1
	if dir == models.SortDesc {
		sign = -1
	}

	if by == models.SortByName {
		keys := make([]string, len(entries))
		for i, e := range entries {
			keys[i] = fold(e.File.Basename)
		}
		sortStableBy(entries, keys, func(a, b string) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			}
			return 0
		}, sign)
		return
	}

	keys := make([]dateKey, len(entries))
	for i, e := range entries {
		keys[i] = dateKeyOf(e, by)
	}
	sortStableBy(entries, keys, compareDateKeys, sign)
}

// dateKey is the sort key for a date sort. Entries without a stat result
// (failed or missing lookups) rank below every real timestamp.
type dateKey struct {
	ok bool
	t  time.Time
}

func dateKeyOf(e Entry, by models.SortBy) dateKey {
	if e.Stat == nil {
		return dateKey{}
	}
	if by == models.SortByCreated {
		return dateKey{ok: true, t: e.Stat.CreatedAt}
	}
	return dateKey{ok: true, t: e.Stat.ModifiedAt}
}

func compareDateKeys(a, b dateKey) int {
	switch {
	case !a.ok && !b.ok:
		return 0
	case !a.ok:
		return -1
	case !b.ok:
		return 1
	}
	return a.t.Compare(b.t)
}

type keyedEntries[K any] struct {
	entries []Entry
	keys    []K
	cmp     func(a, b K) int
	sign    int
}

func (k keyedEntries[K]) Len() int { return len(k.entries) }
func (k keyedEntries[K]) Less(i, j int) bool {
	return k.sign*k.cmp(k.keys[i], k.keys[j]) < 0
}
func (k keyedEntries[K]) Swap(i, j int) {
	k.entries[i], k.entries[j] = k.entries[j], k.entries[i]
	k.keys[i], k.keys[j] = k.keys[j], k.keys[i]
}

func sortStableBy[K any](entries []Entry, keys []K, cmp func(a, b K) int, sign int) {
	sort.Stable(keyedEntries[K]{entries: entries, keys: keys, cmp: cmp, sign: sign})
}
