package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreadcrumbs(t *testing.T) {
	tests := []struct {
		folder string
		want   []Crumb
	}{
		{
			folder: "",
			want:   []Crumb{{Label: "Root", Path: ""}},
		},
		{
			folder: "a",
			want:   []Crumb{{Label: "Root", Path: ""}, {Label: "a", Path: "a"}},
		},
		{
			folder: "a/b/c",
			want: []Crumb{
				{Label: "Root", Path: ""},
				{Label: "a", Path: "a"},
				{Label: "b", Path: "a/b"},
				{Label: "c", Path: "a/b/c"},
			},
		},
		{
			folder: "/a/b/",
			want: []Crumb{
				{Label: "Root", Path: ""},
				{Label: "a", Path: "a"},
				{Label: "b", Path: "a/b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			assert.Equal(t, tt.want, Breadcrumbs(tt.folder))
		})
	}
}

func TestStateTransitions(t *testing.T) {
	s := New()
	assert.True(t, s.AtRoot())
	assert.Equal(t, "", s.SearchTerm)

	s.SetSearch("todo")
	s.NavigateTo("projects/alpha")
	assert.Equal(t, "projects/alpha", s.CurrentFolder)
	assert.Equal(t, "todo", s.SearchTerm, "navigation keeps the search term")
	assert.Len(t, s.Breadcrumbs(), 3)

	// No existence validation.
	s.NavigateTo("does/not/exist")
	assert.Equal(t, "does/not/exist", s.CurrentFolder)

	s.Up()
	assert.Equal(t, "does/not", s.CurrentFolder)
	s.Up()
	s.Up()
	assert.True(t, s.AtRoot())
	s.Up()
	assert.True(t, s.AtRoot())
}
