package index

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-cards/pkg/models"
)

func rec(path string) models.FileRecord {
	return models.NewFileRecord(path, time.Time{}, time.Time{})
}

func sampleVault() []models.FileRecord {
	return []models.FileRecord{
		rec("a.md"),
		rec("f/b.md"),
		rec("f/g/c.md"),
		rec("f/g/h/d.md"),
		rec("z/e.md"),
		rec("fa/x.md"),
	}
}

func paths(files []models.FileRecord) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestFoldersIncludesAncestors(t *testing.T) {
	files := []models.FileRecord{rec("a/b/c/deep.md")}
	assert.Equal(t, []string{"a", "a/b", "a/b/c"}, Folders(files))
}

func TestFolders(t *testing.T) {
	assert.Equal(t, []string{"f", "f/g", "f/g/h", "fa", "z"}, Folders(sampleVault()))
	assert.Empty(t, Folders([]models.FileRecord{rec("root.md")}))
}

func TestVisibleFolders(t *testing.T) {
	folders := Folders(sampleVault())

	tests := []struct {
		current string
		want    []string
	}{
		{"", []string{"f", "fa", "z"}},
		{"f", []string{"f/g"}},
		{"f/g", []string{"f/g/h"}},
		{"f/g/h", nil},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run("current="+tt.current, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleFolders(folders, tt.current))
		})
	}
}

func TestVisibleFoldersOnlyOneLevelDeep(t *testing.T) {
	folders := Folders(sampleVault())
	for _, current := range append([]string{""}, folders...) {
		for _, folder := range VisibleFolders(folders, current) {
			require.NotEqual(t, current, folder, "a folder is never visible inside itself")
			rest := folder
			if current != "" {
				require.True(t, strings.HasPrefix(folder, current+"/"))
				rest = strings.TrimPrefix(folder, current+"/")
			}
			assert.NotContains(t, rest, "/", "folder %q is deeper than one level under %q", folder, current)
		}
	}
}

func TestVisibleFilesFlatteningMode(t *testing.T) {
	files := []models.FileRecord{
		{Path: "a.md", Basename: "a", ParentPath: ""},
		{Path: "f/b.md", Basename: "b", ParentPath: "f"},
	}

	settings := models.DefaultViewSettings()

	settings.ShowAllFilesAtRoot = true
	assert.Equal(t, []string{"a.md", "f/b.md"}, paths(VisibleFiles(files, settings, "")))

	settings.ShowAllFilesAtRoot = false
	assert.Equal(t, []string{"a.md"}, paths(VisibleFiles(files, settings, "")))

	for _, flatten := range []bool{true, false} {
		settings.ShowAllFilesAtRoot = flatten
		assert.Equal(t, []string{"f/b.md"}, paths(VisibleFiles(files, settings, "f")))
	}
}

func TestVisibleFilesNoRecursiveDescent(t *testing.T) {
	settings := models.DefaultViewSettings()
	assert.Equal(t, []string{"f/b.md"}, paths(VisibleFiles(sampleVault(), settings, "f")))
	assert.Equal(t, []string{"f/g/c.md"}, paths(VisibleFiles(sampleVault(), settings, "f/g/")))
}

func TestChildFileCount(t *testing.T) {
	files := sampleVault()
	assert.Equal(t, 1, ChildFileCount(files, "f"))
	assert.Equal(t, 1, ChildFileCount(files, "f/g"))
	assert.Equal(t, 0, ChildFileCount(files, "missing"))
	assert.Equal(t, 1, ChildFileCount(files, ""))
}
