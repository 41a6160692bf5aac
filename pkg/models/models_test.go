package models

import (
	"testing"
	"time"
)

func TestNewFileRecord(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	modified := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		path       string
		wantBase   string
		wantParent string
	}{
		{"a.md", "a", ""},
		{"f/b.md", "b", "f"},
		{"a/b/c/Deep Note.md", "Deep Note", "a/b/c"},
		{"/leading/slash.md", "slash", "leading"},
		{"no-extension", "no-extension", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := NewFileRecord(tt.path, created, modified)
			if rec.Basename != tt.wantBase {
				t.Errorf("Basename = %q, want %q", rec.Basename, tt.wantBase)
			}
			if rec.ParentPath != tt.wantParent {
				t.Errorf("ParentPath = %q, want %q", rec.ParentPath, tt.wantParent)
			}
			if !rec.CreatedAt.Equal(created) || !rec.ModifiedAt.Equal(modified) {
				t.Errorf("timestamps not carried over: %v %v", rec.CreatedAt, rec.ModifiedAt)
			}
		})
	}
}

func TestFolderHelpers(t *testing.T) {
	if got := CleanFolder("/a/b/"); got != "a/b" {
		t.Errorf("CleanFolder = %q", got)
	}
	if !IsRoot("") || !IsRoot("/") || !IsRoot(".") {
		t.Error("expected root folders to be recognized")
	}
	if IsRoot("a") {
		t.Error("'a' is not root")
	}
	if got := ParentOf("a/b/c"); got != "a/b" {
		t.Errorf("ParentOf = %q", got)
	}
	if got := ParentOf("a"); got != "" {
		t.Errorf("ParentOf(top level) = %q, want root", got)
	}
	if got := BaseName("a/b/c"); got != "c" {
		t.Errorf("BaseName = %q", got)
	}
	if got := JoinPath("", "x.md"); got != "x.md" {
		t.Errorf("JoinPath root = %q", got)
	}
	if got := JoinPath("a/b/", "x.md"); got != "a/b/x.md" {
		t.Errorf("JoinPath = %q", got)
	}
}

func TestParseSortBy(t *testing.T) {
	tests := []struct {
		in      string
		want    SortBy
		wantErr bool
	}{
		{"name", SortByName, false},
		{"created", SortByCreated, false},
		{"ctime", SortByCreated, false},
		{"modified", SortByModified, false},
		{"MTIME", SortByModified, false},
		{"size", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSortBy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortBy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSortBy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseSortDirection("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
	if d, _ := ParseSortDirection("ASC"); d != SortAsc {
		t.Errorf("ParseSortDirection(ASC) = %q", d)
	}
}

func TestViewSettingsValidate(t *testing.T) {
	s := DefaultViewSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ViewSettings)
	}{
		{"preview too short", func(s *ViewSettings) { s.PreviewLength = 10 }},
		{"preview too long", func(s *ViewSettings) { s.PreviewLength = 501 }},
		{"bad sort key", func(s *ViewSettings) { s.SortBy = "size" }},
		{"bad direction", func(s *ViewSettings) { s.SortDirection = "up" }},
		{"narrow card", func(s *ViewSettings) { s.CardWidth = 100 }},
		{"tall card", func(s *ViewSettings) { s.CardHeight = 1000 }},
		{"spacing", func(s *ViewSettings) { s.CardSpacing = 0 }},
		{"empty date format", func(s *ViewSettings) { s.DateFormat = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultViewSettings()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCardVariants(t *testing.T) {
	folder := NewFolderCard(FolderCard{Name: "projects", Path: "work/projects", ChildFileCount: 3})
	if folder.Kind != CardFolder || folder.File != nil || folder.Title() != "projects" {
		t.Errorf("unexpected folder card: %+v", folder)
	}

	file := NewFileCard(FileCard{File: NewFileRecord("work/plan.md", time.Time{}, time.Time{})})
	if file.Kind != CardFile || file.Folder != nil || file.Title() != "plan" {
		t.Errorf("unexpected file card: %+v", file)
	}
	if file.File.PreviewText != nil || file.File.DisplayDate != nil {
		t.Error("optional fields should default to nil")
	}
}
