package models

import "time"

// CardKind tags the variant held by a Card.
type CardKind string

const (
	CardFolder CardKind = "folder"
	CardFile   CardKind = "file"
)

// FolderCard describes a navigable folder tile.
type FolderCard struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	ChildFileCount int    `json:"child_file_count"`
}

// FileCard describes a note tile. PreviewText and DisplayDate are nil when
// the corresponding setting is off or the value could not be derived.
type FileCard struct {
	File        FileRecord `json:"file"`
	PreviewText *string    `json:"preview_text"`
	DisplayDate *time.Time `json:"display_date"`
}

// Card is one tile of the grid. Exactly one of Folder or File is set,
// matching Kind.
type Card struct {
	Kind   CardKind    `json:"kind"`
	Folder *FolderCard `json:"folder,omitempty"`
	File   *FileCard   `json:"file,omitempty"`
}

// NewFolderCard wraps a FolderCard.
func NewFolderCard(fc FolderCard) Card {
	return Card{Kind: CardFolder, Folder: &fc}
}

// NewFileCard wraps a FileCard.
func NewFileCard(fc FileCard) Card {
	return Card{Kind: CardFile, File: &fc}
}

// Title returns the text shown in the card header.
func (c Card) Title() string {
	switch c.Kind {
	case CardFolder:
		return c.Folder.Name
	case CardFile:
		return c.File.File.Basename
	}
	return ""
}
