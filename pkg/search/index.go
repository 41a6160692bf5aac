// Package search keeps a SQLite content index of the vault for full-text
// note search.
package search

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-cards/pkg/frontmatter"
	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/sanitize"
)

// DefaultLimit caps the number of hits when Options.Limit is unset.
const DefaultLimit = 50

const snippetLength = 120

// Index manages the search index
type Index struct {
	db     *sql.DB
	useFTS bool
}

// Hit is one search result.
type Hit struct {
	File    models.FileRecord `json:"file"`
	Title   string            `json:"title"`
	Snippet string            `json:"snippet"`
}

// Options for searching
type Options struct {
	// Folder restricts hits to notes under this folder (recursively).
	Folder string
	Limit  int
}

// NewIndex opens or creates the index database at dbPath.
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize search index: %w", err)
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS cards_meta (
		path TEXT PRIMARY KEY,
		folder TEXT,
		title TEXT,
		content TEXT,
		created_at TIMESTAMP,
		modified_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_cards_meta_folder ON cards_meta(folder);
	CREATE INDEX IF NOT EXISTS idx_cards_meta_title ON cards_meta(title);
	`

	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS cards_fts USING fts5(
			path UNINDEXED,
			title,
			content,
			tokenize = 'porter unicode61'
		);
		`

		if _, err := idx.db.Exec(ftsSchema); err != nil {
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if FTS5 module is available
func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}

	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// UsesFTS reports whether the FTS5 table is in use.
func (idx *Index) UsesFTS() bool {
	return idx.useFTS
}

// IndexFile indexes or reindexes a note. Frontmatter is not searchable; a
// frontmatter title replaces the basename as the hit title.
func (idx *Index) IndexFile(file models.FileRecord, content string) error {
	title := file.Basename
	if fm, _, err := frontmatter.Parse(content); err == nil && fm != nil && fm.Title != "" {
		title = fm.Title
	}
	body := frontmatter.Strip(content)

	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err = tx.Exec("DELETE FROM cards_fts WHERE path = ?", file.Path); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM cards_meta WHERE path = ?", file.Path); err != nil {
		return err
	}

	if idx.useFTS {
		_, err = tx.Exec(`
			INSERT INTO cards_fts (path, title, content)
			VALUES (?, ?, ?)
		`, file.Path, title, body)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO cards_meta (path, folder, title, content, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, file.Path, file.ParentPath, title, body, file.CreatedAt, file.ModifiedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Search performs a full-text search over titles and note bodies.
func (idx *Index) Search(query string, opts *Options) ([]Hit, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if idx.useFTS {
		return idx.searchWithFTS(query, opts)
	}
	return idx.searchWithoutFTS(query, opts)
}

// folderCondition restricts results to folder and its descendants.
func folderCondition(column, folder string) (string, []any) {
	folder = models.CleanFolder(folder)
	if folder == "" {
		return "", nil
	}
	return fmt.Sprintf("(%s = ? OR %s LIKE ?)", column, column), []any{folder, folder + models.PathSeparator + "%"}
}

// ftsQuery quotes each term so user input is never parsed as FTS syntax.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func (idx *Index) searchWithFTS(query string, opts *Options) ([]Hit, error) {
	conditions := []string{"cards_fts MATCH ?"}
	args := []any{ftsQuery(query)}

	if cond, condArgs := folderCondition("m.folder", opts.Folder); cond != "" {
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
	}

	searchQuery := fmt.Sprintf(`
		SELECT
			m.path, m.title, m.created_at, m.modified_at,
			snippet(cards_fts, 2, '', '', '...', 16) as snippet
		FROM cards_fts f
		JOIN cards_meta m ON f.path = m.path
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Hit
	for rows.Next() {
		var (
			p, title, snippet string
			created, modified time.Time
		)
		if err := rows.Scan(&p, &title, &created, &modified, &snippet); err != nil {
			return nil, err
		}
		results = append(results, Hit{
			File:    models.NewFileRecord(p, created, modified),
			Title:   title,
			Snippet: sanitize.Sanitize(snippet),
		})
	}

	return results, rows.Err()
}

// searchWithoutFTS performs search using LIKE queries on the metadata table
func (idx *Index) searchWithoutFTS(query string, opts *Options) ([]Hit, error) {
	searchPattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	conditions := []string{"(title LIKE ? OR content LIKE ?)"}
	args := []any{searchPattern, searchPattern}

	if cond, condArgs := folderCondition("folder", opts.Folder); cond != "" {
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
	}

	searchQuery := fmt.Sprintf(`
		SELECT path, title, content, created_at, modified_at
		FROM cards_meta
		WHERE %s
		ORDER BY modified_at DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Hit
	for rows.Next() {
		var (
			p, title, content string
			created, modified time.Time
		)
		if err := rows.Scan(&p, &title, &content, &created, &modified); err != nil {
			return nil, err
		}
		results = append(results, Hit{
			File:    models.NewFileRecord(p, created, modified),
			Title:   title,
			Snippet: sanitize.Preview(content, snippetLength),
		})
	}

	return results, rows.Err()
}

// RemoveFile removes a note from the index
func (idx *Index) RemoveFile(path string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err = tx.Exec("DELETE FROM cards_fts WHERE path = ?", path); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM cards_meta WHERE path = ?", path); err != nil {
		return err
	}

	return tx.Commit()
}

// Paths returns every indexed path.
func (idx *Index) Paths() ([]string, error) {
	rows, err := idx.db.Query("SELECT path FROM cards_meta ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}
