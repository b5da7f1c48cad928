// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/daybook/pkg/types"
)

// QueryOptions holds parameters for record queries.
type QueryOptions struct {
	// Query is an FTS5 search over date, body, and metadata.
	Query string

	// Month (1-12) and Day filter on the parsed date line. Zero means any.
	Month int
	Day   int

	// Page selects one page number. Zero means any.
	Page int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Month == 0 && q.Day == 0 && q.Page == 0
}

// QueryResult is a matching record with its search snippet.
type QueryResult struct {
	Record types.PageRecord `json:"record"`

	// Snippet is the matching body excerpt, with hits in brackets. Empty
	// for filter-only queries.
	Snippet string `json:"snippet,omitempty"`
}

// Retrieve runs a full-text search, structured filters, or both. Full-text
// results are ranked by relevance; filter-only results are in page order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.page_number, r.date, r.paragraphs, r.metadata,
				snippet(records_fts, 1, '[', ']', '...', 12)
			FROM records_fts
			JOIN records r ON r.page_number = records_fts.rowid
			WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.page_number, r.date, r.paragraphs, r.metadata, ''
			FROM records r
			WHERE 1=1`)
	}

	if opts.Month != 0 {
		qb.WriteString(` AND r.month = ?`)
		args = append(args, opts.Month)
	}
	if opts.Day != 0 {
		qb.WriteString(` AND r.day = ?`)
		args = append(args, opts.Day)
	}
	if opts.Page != 0 {
		qb.WriteString(` AND r.page_number = ?`)
		args = append(args, opts.Page)
	}

	if useFTS {
		qb.WriteString(` ORDER BY records_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.page_number`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr             QueryResult
			paragraphsJSON string
		)
		r := &qr.Record
		if err := rows.Scan(&r.PageNumber, &r.Date, &paragraphsJSON, &r.Metadata, &qr.Snippet); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(paragraphsJSON), &r.Paragraphs); err != nil {
			return nil, fmt.Errorf("decoding paragraphs of page %d: %w", r.PageNumber, err)
		}
		if r.Paragraphs == nil {
			r.Paragraphs = []string{}
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}
