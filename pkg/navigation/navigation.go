// Package navigation tracks where the card view is pointed and derives
// breadcrumbs from it.
package navigation

import (
	"strings"

	"github.com/mattsolo1/grove-cards/pkg/models"
)

// RootLabel is the label of the first breadcrumb.
const RootLabel = "Root"

// State is the current folder and search term of one open view. It starts
// at the root with an empty search and is never persisted.
type State struct {
	CurrentFolder string `json:"current_folder"`
	SearchTerm    string `json:"search_term"`
}

// Crumb is one clickable breadcrumb segment.
type Crumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// New returns the state of a freshly opened view.
func New() State {
	return State{}
}

// NavigateTo moves to folder. The folder is not checked for existence and
// the search term is kept.
func (s *State) NavigateTo(folder string) {
	s.CurrentFolder = models.CleanFolder(folder)
}

// SetSearch replaces the search term.
func (s *State) SetSearch(term string) {
	s.SearchTerm = term
}

// Up moves to the parent folder. It is a no-op at the root.
func (s *State) Up() {
	s.CurrentFolder = models.ParentOf(s.CurrentFolder)
}

// AtRoot reports whether the view shows the vault root.
func (s State) AtRoot() bool {
	return models.IsRoot(s.CurrentFolder)
}

// Breadcrumbs returns the trail for the current folder.
func (s State) Breadcrumbs() []Crumb {
	return Breadcrumbs(s.CurrentFolder)
}

// Breadcrumbs returns a root crumb followed by one crumb per segment of
// folder, each carrying the cumulative path up to that segment.
func Breadcrumbs(folder string) []Crumb {
	crumbs := []Crumb{{Label: RootLabel, Path: ""}}
	folder = models.CleanFolder(folder)
	if folder == "" {
		return crumbs
	}

	var current strings.Builder
	for i, part := range strings.Split(folder, models.PathSeparator) {
		if i > 0 {
			current.WriteString(models.PathSeparator)
		}
		current.WriteString(part)
		crumbs = append(crumbs, Crumb{Label: part, Path: current.String()})
	}
	return crumbs
}
