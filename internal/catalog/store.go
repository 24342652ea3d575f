// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records rendered booklet sessions in a SQLite database so
// they can be searched and exported without re-reading the submissions file.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/booklet/pkg/types"
)

const dbFile = "booklet.db"

// nonSlug matches runs of characters that are not allowed in a session ID.
var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Store manages the session catalog database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the catalog database at dir/booklet.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		author_block TEXT NOT NULL,
		abstract TEXT NOT NULL,
		paragraphs TEXT NOT NULL,
		refs TEXT NOT NULL,
		content_hash TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_sessions_position ON sessions(position)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// StoreSummary holds counts from a catalog store run.
type StoreSummary struct {
	Stored    int
	Updated   int
	Unchanged int
	Removed   int
}

// Total returns the number of sessions processed.
func (s StoreSummary) Total() int {
	return s.Stored + s.Updated + s.Unchanged
}

// Slug derives a session ID from a title: lower-case ASCII letters and
// digits joined by hyphens. Titles with no usable characters get "session".
func Slug(title string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return "session"
	}
	return slug
}

// assignIDs returns one unique ID per session. Repeated slugs get a
// numeric suffix in booklet order.
func assignIDs(sessions []types.Session) []string {
	ids := make([]string, len(sessions))
	used := make(map[string]bool)
	for i, sess := range sessions {
		base := Slug(sess.Title)
		id := base
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		used[id] = true
		ids[i] = id
	}
	return ids
}

func contentHash(sess types.Session) string {
	data, _ := json.Marshal(sess)
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// Store replaces the catalog contents with sessions, given in booklet
// order. Sessions whose content is unchanged since the last run are left
// alone; sessions no longer present are removed. Progress lines go to w.
func (s *Store) Store(ctx context.Context, sessions []types.Session, w io.Writer) (StoreSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StoreSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing := make(map[string]string)
	rows, err := tx.QueryContext(ctx, `SELECT id, content_hash FROM sessions`)
	if err != nil {
		return StoreSummary{}, fmt.Errorf("reading catalog: %w", err)
	}
	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			rows.Close()
			return StoreSummary{}, fmt.Errorf("scanning row: %w", err)
		}
		existing[id] = hash
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return StoreSummary{}, fmt.Errorf("reading catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sessions (id, position, title, author_block, abstract, paragraphs, refs, content_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			position=excluded.position, title=excluded.title,
			author_block=excluded.author_block, abstract=excluded.abstract,
			paragraphs=excluded.paragraphs, refs=excluded.refs,
			content_hash=excluded.content_hash`)
	if err != nil {
		return StoreSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary StoreSummary
	ids := assignIDs(sessions)
	for i, sess := range sessions {
		id := ids[i]
		hash := contentHash(sess)
		prev, known := existing[id]
		delete(existing, id)

		paragraphsJSON, _ := json.Marshal(sess.Paragraphs)
		refsJSON, _ := json.Marshal(sess.References)
		if _, err := stmt.ExecContext(ctx,
			id, i, sess.Title, sess.AuthorBlock, sess.Abstract,
			string(paragraphsJSON), string(refsJSON), hash,
		); err != nil {
			return StoreSummary{}, fmt.Errorf("storing session %s: %w", id, err)
		}

		switch {
		case !known:
			fmt.Fprintf(w, "stored    %s\n", id)
			summary.Stored++
		case prev != hash:
			fmt.Fprintf(w, "updated   %s\n", id)
			summary.Updated++
		default:
			summary.Unchanged++
		}
	}

	stale := make([]string, 0, len(existing))
	for id := range existing {
		stale = append(stale, id)
	}
	sort.Strings(stale)
	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
			return StoreSummary{}, fmt.Errorf("removing session %s: %w", id, err)
		}
		fmt.Fprintf(w, "removed   %s\n", id)
		summary.Removed++
	}

	if err := tx.Commit(); err != nil {
		return StoreSummary{}, fmt.Errorf("committing catalog: %w", err)
	}

	fmt.Fprintf(w, "\nstored: %d, updated: %d, unchanged: %d, removed: %d\n",
		summary.Stored, summary.Updated, summary.Unchanged, summary.Removed)
	return summary, nil
}
