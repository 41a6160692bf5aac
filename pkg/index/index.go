// Package index answers visibility questions over a flat vault snapshot:
// which folders and files belong under a given folder scope.
package index

import (
	"sort"
	"strings"

	"github.com/mattsolo1/grove-cards/pkg/models"
)

// Folders returns every folder implied by the snapshot: each file's parent
// folder and all of that folder's ancestors. The root is not included.
func Folders(files []models.FileRecord) []string {
	seen := make(map[string]struct{})
	for _, f := range files {
		folder := models.CleanFolder(f.ParentPath)
		for folder != "" {
			if _, ok := seen[folder]; ok {
				break
			}
			seen[folder] = struct{}{}
			folder = models.ParentOf(folder)
		}
	}

	folders := make([]string, 0, len(seen))
	for folder := range seen {
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	return folders
}

// IsDirectChild reports whether folder sits exactly one level below current.
func IsDirectChild(folder, current string) bool {
	folder = models.CleanFolder(folder)
	current = models.CleanFolder(current)
	if folder == "" || folder == current {
		return false
	}
	if current == "" {
		return !strings.Contains(folder, models.PathSeparator)
	}
	prefix := current + models.PathSeparator
	if !strings.HasPrefix(folder, prefix) {
		return false
	}
	return !strings.Contains(folder[len(prefix):], models.PathSeparator)
}

// VisibleFolders filters folders down to the direct children of current,
// sorted lexicographically.
func VisibleFolders(folders []string, current string) []string {
	var visible []string
	for _, folder := range folders {
		if IsDirectChild(folder, current) {
			visible = append(visible, models.CleanFolder(folder))
		}
	}
	sort.Strings(visible)
	return visible
}

// VisibleFiles returns the files shown for current. At the root with
// ShowAllFilesAtRoot set, every file in the vault is visible regardless of
// depth; otherwise only files whose parent is exactly current are.
// Input order is preserved.
func VisibleFiles(files []models.FileRecord, settings models.ViewSettings, current string) []models.FileRecord {
	current = models.CleanFolder(current)
	if current == "" && settings.ShowAllFilesAtRoot {
		out := make([]models.FileRecord, len(files))
		copy(out, files)
		return out
	}

	var visible []models.FileRecord
	for _, f := range files {
		if models.CleanFolder(f.ParentPath) == current {
			visible = append(visible, f)
		}
	}
	return visible
}

// ChildFileCount counts files whose parent is exactly folder. Files in
// nested subfolders are not counted.
func ChildFileCount(files []models.FileRecord, folder string) int {
	folder = models.CleanFolder(folder)
	n := 0
	for _, f := range files {
		if models.CleanFolder(f.ParentPath) == folder {
			n++
		}
	}
	return n
}
