// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/booklet/pkg/types"
)

// QueryOptions holds parameters for catalog searches.
type QueryOptions struct {
	// Query is matched case-insensitively against title, authors and
	// abstract. An empty query matches every session.
	Query string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Entry is a stored session with its catalog ID and booklet position.
type Entry struct {
	ID            string `json:"id" yaml:"id"`
	Position      int    `json:"position" yaml:"position"`
	types.Session `yaml:",inline"`
}

// Search returns sessions matching opts in booklet order.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, position, title, author_block, abstract, paragraphs, refs
		FROM sessions WHERE 1=1`)

	if q := strings.TrimSpace(opts.Query); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		qb.WriteString(` AND (lower(title) LIKE ? ESCAPE '\'
			OR lower(author_block) LIKE ? ESCAPE '\'
			OR lower(abstract) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	qb.WriteString(` ORDER BY position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e              Entry
			paragraphsJSON string
			refsJSON       string
		)
		if err := rows.Scan(&e.ID, &e.Position, &e.Title, &e.AuthorBlock, &e.Abstract,
			&paragraphsJSON, &refsJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		json.Unmarshal([]byte(paragraphsJSON), &e.Paragraphs)
		json.Unmarshal([]byte(refsJSON), &e.References)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
