package models

import (
	"fmt"
	"strings"
)

// SortBy selects the key cards are ordered by.
type SortBy string

const (
	SortByName     SortBy = "name"
	SortByCreated  SortBy = "created"
	SortByModified SortBy = "modified"
)

// SortDirection selects ascending or descending order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DefaultDateFormat is the Go layout used for card dates.
const DefaultDateFormat = "Jan 2, 2006"

// ViewSettings controls how the card view is built and drawn. It is read-only
// input to every render; persistence belongs to the caller.
type ViewSettings struct {
	ShowPreview        bool          `mapstructure:"show_preview" json:"show_preview" yaml:"show_preview"`
	PreviewLength      int           `mapstructure:"preview_length" json:"preview_length" yaml:"preview_length" validate:"min=50,max=500"`
	ShowDate           bool          `mapstructure:"show_date" json:"show_date" yaml:"show_date"`
	SortBy             SortBy        `mapstructure:"sort_by" json:"sort_by" yaml:"sort_by" validate:"required,oneof=name created modified"`
	SortDirection      SortDirection `mapstructure:"sort_direction" json:"sort_direction" yaml:"sort_direction" validate:"required,oneof=asc desc"`
	ShowFolders        bool          `mapstructure:"show_folders" json:"show_folders" yaml:"show_folders"`
	ShowAllFilesAtRoot bool          `mapstructure:"show_all_files_at_root" json:"show_all_files_at_root" yaml:"show_all_files_at_root"`
	ShowBreadcrumbs    bool          `mapstructure:"show_breadcrumbs" json:"show_breadcrumbs" yaml:"show_breadcrumbs"`
	CardWidth          int           `mapstructure:"card_width" json:"card_width" yaml:"card_width" validate:"min=150,max=500"`
	CardHeight         int           `mapstructure:"card_height" json:"card_height" yaml:"card_height" validate:"min=100,max=400"`
	CardSpacing        int           `mapstructure:"card_spacing" json:"card_spacing" yaml:"card_spacing" validate:"min=5,max=30"`
	DateFormat         string        `mapstructure:"date_format" json:"date_format" yaml:"date_format" validate:"required"`
}

// DefaultViewSettings returns the settings a fresh installation starts with.
func DefaultViewSettings() ViewSettings {
	return ViewSettings{
		ShowPreview:        true,
		PreviewLength:      100,
		ShowDate:           true,
		SortBy:             SortByModified,
		SortDirection:      SortDesc,
		ShowFolders:        false,
		ShowAllFilesAtRoot: true,
		ShowBreadcrumbs:    false,
		CardWidth:          250,
		CardHeight:         150,
		CardSpacing:        10,
		DateFormat:         DefaultDateFormat,
	}
}

// ParseSortBy accepts the canonical names plus the "mtime"/"ctime" aliases.
func ParseSortBy(s string) (SortBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SortByName, nil
	case "created", "ctime":
		return SortByCreated, nil
	case "modified", "mtime", "":
		return SortByModified, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want name, created or modified)", s)
}

// ParseSortDirection accepts "asc" or "desc".
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, nil
	case "desc", "":
		return SortDesc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q (want asc or desc)", s)
}
