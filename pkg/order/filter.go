// Package order filters and sorts card candidates.
package order

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mattsolo1/grove-cards/pkg/models"
)

// fold returns the case-folded form of s used for case-insensitive matching.
// A fresh Caser is used per call since Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Filter keeps the items whose name contains term, ignoring case. An empty
// term returns every item. Input order is preserved.
func Filter[T any](items []T, term string, name func(T) string) []T {
	if term == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	needle := fold(term)
	var out []T
	for _, item := range items {
		if strings.Contains(fold(name(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}

// FilterFiles matches term against each file's basename.
func FilterFiles(files []models.FileRecord, term string) []models.FileRecord {
	return Filter(files, term, func(f models.FileRecord) string { return f.Basename })
}

// FilterFolders matches term against the last segment of each folder path.
func FilterFolders(folders []string, term string) []string {
	return Filter(folders, term, models.BaseName)
}

// Matches reports whether name contains term, ignoring case.
func Matches(name, term string) bool {
	return term == "" || strings.Contains(fold(name), fold(term))
}
