package models

import (
	"path"
	"strings"
	"time"
)

// PathSeparator separates folder segments in vault paths, independent of the OS.
const PathSeparator = "/"

// FileRecord is an immutable snapshot of a note as reported by the vault.
type FileRecord struct {
	Path       string    `json:"path"`        // Vault-relative, '/'-delimited, unique
	Basename   string    `json:"basename"`    // File name without extension
	ParentPath string    `json:"parent_path"` // "" for files at the vault root
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// FileStat holds the timestamps returned by a stat lookup.
type FileStat struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// NewFileRecord derives Basename and ParentPath from a vault-relative path.
func NewFileRecord(p string, created, modified time.Time) FileRecord {
	p = strings.Trim(p, PathSeparator)
	name := path.Base(p)
	return FileRecord{
		Path:       p,
		Basename:   strings.TrimSuffix(name, path.Ext(name)),
		ParentPath: ParentOf(p),
		CreatedAt:  created,
		ModifiedAt: modified,
	}
}

// IsRoot reports whether a folder path denotes the vault root.
func IsRoot(folder string) bool {
	return CleanFolder(folder) == ""
}

// CleanFolder normalizes a folder path: no leading or trailing separator,
// "." and "/" collapse to root.
func CleanFolder(folder string) string {
	folder = strings.Trim(folder, PathSeparator)
	if folder == "." {
		return ""
	}
	return folder
}

// ParentOf returns the folder containing p, or "" when p is at the root.
func ParentOf(p string) string {
	p = strings.Trim(p, PathSeparator)
	i := strings.LastIndex(p, PathSeparator)
	if i < 0 {
		return ""
	}
	return p[:i]
}

// BaseName returns the last segment of a folder or file path.
func BaseName(p string) string {
	p = strings.Trim(p, PathSeparator)
	if i := strings.LastIndex(p, PathSeparator); i >= 0 {
		return p[i+1:]
	}
	return p
}

// JoinPath joins a folder and a child name into a vault path.
func JoinPath(folder, name string) string {
	folder = CleanFolder(folder)
	if folder == "" {
		return name
	}
	return folder + PathSeparator + name
}
