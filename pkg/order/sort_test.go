package order

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// statFunc adapts a function to vault.Statter.
type statFunc func(ctx context.Context, path string) (models.FileStat, error)

func (f statFunc) StatFile(ctx context.Context, path string) (models.FileStat, error) {
	return f(ctx, path)
}

func fixture() (*vault.Memory, []models.FileRecord) {
	m := vault.NewMemory()
	m.Put("beta.md", "", base.Add(3*time.Hour), base.Add(1*time.Hour))
	m.Put("Alpha.md", "", base.Add(1*time.Hour), base.Add(3*time.Hour))
	m.Put("gamma.md", "", base.Add(2*time.Hour), base.Add(2*time.Hour))
	m.Put("delta.md", "", base.Add(2*time.Hour), base.Add(2*time.Hour))
	fs, _ := m.ListAllFiles(context.Background())
	return m, fs
}

func basenames(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.File.Basename)
	}
	return out
}

func TestSortByName(t *testing.T) {
	m, fs := fixture()
	s := Sorter{Statter: m}

	asc, err := s.Sort(context.Background(), fs, models.SortByName, models.SortAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "beta", "delta", "gamma"}, basenames(asc))
	assert.Zero(t, m.StatCalls(), "name sort must not stat")

	desc, err := s.Sort(context.Background(), fs, models.SortByName, models.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma", "delta", "beta", "Alpha"}, basenames(desc))
}

func TestSortByDates(t *testing.T) {
	m, fs := fixture()
	s := Sorter{Statter: m}
	ctx := context.Background()

	created, err := s.Sort(ctx, fs, models.SortByCreated, models.SortAsc)
	require.NoError(t, err)
	// delta and gamma tie on created time and keep input (path) order.
	assert.Equal(t, []string{"Alpha", "delta", "gamma", "beta"}, basenames(created))

	modified, err := s.Sort(ctx, fs, models.SortByModified, models.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "delta", "gamma", "beta"}, basenames(modified))
	for _, e := range modified {
		require.NotNil(t, e.Stat)
		assert.NoError(t, e.StatErr)
	}
}

func TestSortIsIdempotent(t *testing.T) {
	m, fs := fixture()
	s := Sorter{Statter: m}
	ctx := context.Background()

	for _, by := range []models.SortBy{models.SortByName, models.SortByCreated, models.SortByModified} {
		for _, dir := range []models.SortDirection{models.SortAsc, models.SortDesc} {
			once, err := s.Sort(ctx, fs, by, dir)
			require.NoError(t, err)
			twice, err := s.Sort(ctx, Files(once), by, dir)
			require.NoError(t, err)
			assert.Equal(t, basenames(once), basenames(twice), "by=%s dir=%s", by, dir)
		}
	}
}

func TestSortDirectionReversesStrictPairs(t *testing.T) {
	m, fs := fixture()
	s := Sorter{Statter: m}
	ctx := context.Background()

	for _, by := range []models.SortBy{models.SortByName, models.SortByCreated, models.SortByModified} {
		asc, err := s.Sort(ctx, fs, by, models.SortAsc)
		require.NoError(t, err)
		desc, err := s.Sort(ctx, fs, by, models.SortDesc)
		require.NoError(t, err)

		pos := func(entries []Entry, name string) int {
			for i, e := range entries {
				if e.File.Basename == name {
					return i
				}
			}
			return -1
		}

		keyed := append([]Entry(nil), asc...)
		for i := range keyed {
			for j := range keyed {
				a, b := keyed[i], keyed[j]
				if a.File.Path == b.File.Path || sameKey(a, b, by) {
					continue
				}
				ascBefore := pos(asc, a.File.Basename) < pos(asc, b.File.Basename)
				descBefore := pos(desc, a.File.Basename) < pos(desc, b.File.Basename)
				assert.NotEqual(t, ascBefore, descBefore, "by=%s %s vs %s", by, a.File.Basename, b.File.Basename)
			}
		}
	}
}

func sameKey(a, b Entry, by models.SortBy) bool {
	if by == models.SortByName {
		return fold(a.File.Basename) == fold(b.File.Basename)
	}
	return compareDateKeys(dateKeyOf(a, by), dateKeyOf(b, by)) == 0
}

func TestSortStatFailureSortsLowest(t *testing.T) {
	m, fs := fixture()
	m.FailStat("Alpha.md")
	s := Sorter{Statter: m}
	ctx := context.Background()

	asc, err := s.Sort(ctx, fs, models.SortByModified, models.SortAsc)
	require.NoError(t, err)
	require.Len(t, asc, len(fs), "a failed stat must not drop the file")
	assert.Equal(t, "Alpha", asc[0].File.Basename)
	assert.Nil(t, asc[0].Stat)
	var statErr *vault.StatError
	assert.True(t, errors.As(asc[0].StatErr, &statErr))

	desc, err := s.Sort(ctx, fs, models.SortByModified, models.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", desc[len(desc)-1].File.Basename)
}

func TestLookupRunsConcurrentlyWithinLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	var mu sync.Mutex
	seen := map[string]bool{}

	statter := statFunc(func(ctx context.Context, path string) (models.FileStat, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		seen[path] = true
		mu.Unlock()
		return models.FileStat{ModifiedAt: base}, nil
	})

	var fs []models.FileRecord
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		fs = append(fs, models.NewFileRecord(name+".md", base, base))
	}

	entries, err := Lookup(context.Background(), fs, statter, 4)
	require.NoError(t, err)
	assert.Len(t, entries, len(fs))
	assert.Len(t, seen, len(fs))
	assert.Greater(t, peak.Load(), int32(1), "lookups should overlap")
	assert.LessOrEqual(t, peak.Load(), int32(4))
	for i, e := range entries {
		assert.Equal(t, fs[i].Path, e.File.Path, "entries keep input order")
	}
}

func TestLookupCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	statter := statFunc(func(ctx context.Context, path string) (models.FileStat, error) {
		return models.FileStat{}, &vault.StatError{Path: path, Err: ctx.Err()}
	})
	_, err := Lookup(ctx, files("a.md", "b.md"), statter, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDateSortWithoutStatter(t *testing.T) {
	_, err := Sorter{}.Sort(context.Background(), files("a.md"), models.SortByCreated, models.SortAsc)
	assert.Error(t, err)
}
