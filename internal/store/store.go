// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps extracted page records in a SQLite database with an
// FTS5 index, for lookup by date, page, or text.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/daybook/internal/segment"
	"github.com/pdiddy/daybook/pkg/types"
)

const (
	dbFile     = "daybook.db"
	exportFile = "export.json"
)

// Store manages the record index database.
type Store struct {
	db         *sql.DB
	indexDir   string
	maxResults int
}

// NewStore opens or creates the database at cfg.IndexDir/daybook.db and
// creates the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	s := &Store{
		db:         db,
		indexDir:   cfg.IndexDir,
		maxResults: maxResults,
	}

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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			page_number INTEGER PRIMARY KEY,
			date TEXT NOT NULL,
			month INTEGER,
			day INTEGER,
			paragraphs TEXT NOT NULL,
			metadata TEXT NOT NULL,
			body TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_month_day ON records(month, day)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(date, body, metadata, content=records, content_rowid=page_number)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, date, body, metadata) VALUES (new.page_number, new.date, new.body, new.metadata);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, date, body, metadata) VALUES('delete', old.page_number, old.date, old.body, old.metadata);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, date, body, metadata) VALUES('delete', old.page_number, old.date, old.body, old.metadata);
				INSERT INTO records_fts(rowid, date, body, metadata) VALUES (new.page_number, new.date, new.body, new.metadata);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from one indexing run.
type IngestSummary struct {
	Indexed int
	Removed int
	Undated int
	Skipped bool
}

// Ingest replaces the indexed records with those in the JSON file at path.
// A file whose modification time matches the last ingested one is skipped.
// On a change it rewrites export.json.
func (s *Store) Ingest(ctx context.Context, path string, w io.Writer) (IngestSummary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading record file %s: %w", path, err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)
	key := sourceKey(path)

	var storedModTime string
	err = s.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM indexing_status WHERE source = ?`, key,
	).Scan(&storedModTime)
	if err == nil && storedModTime == modTime {
		fmt.Fprintf(w, "skipped %s (unchanged)\n", path)
		return IngestSummary{Skipped: true}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading record file %s: %w", path, err)
	}
	records, err := types.DecodeRecords(data)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	summary, err := s.replaceRecords(ctx, key, modTime, records)
	if err != nil {
		return IngestSummary{}, err
	}

	fmt.Fprintf(w, "indexing %s (%d records)\n", path, len(records))
	fmt.Fprintf(w, "\nindexed: %d, removed: %d, undated: %d\n",
		summary.Indexed, summary.Removed, summary.Undated)

	if _, err := s.ExportJSON(ctx, QueryOptions{}, ""); err != nil {
		fmt.Fprintf(w, "warning: export.json write failed: %v\n", err)
	}

	return summary, nil
}

func (s *Store) replaceRecords(ctx context.Context, key, modTime string, records []types.PageRecord) (IngestSummary, error) {
	var summary IngestSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM records`)
	if err != nil {
		return summary, fmt.Errorf("deleting old records: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		summary.Removed = int(n)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (page_number, date, month, day, paragraphs, metadata, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		var month, day sql.NullInt64
		if m, d, ok := segment.ParseDate(r.Date); ok {
			month = sql.NullInt64{Int64: int64(m), Valid: true}
			day = sql.NullInt64{Int64: int64(d), Valid: true}
		} else {
			summary.Undated++
		}

		paragraphs := r.Paragraphs
		if paragraphs == nil {
			paragraphs = []string{}
		}
		paragraphsJSON, err := json.Marshal(paragraphs)
		if err != nil {
			return summary, fmt.Errorf("encoding paragraphs of page %d: %w", r.PageNumber, err)
		}

		if _, err := stmt.ExecContext(ctx,
			r.PageNumber, r.Date, month, day, string(paragraphsJSON), r.Metadata,
			strings.Join(paragraphs, "\n\n"),
		); err != nil {
			return summary, fmt.Errorf("inserting page %d: %w", r.PageNumber, err)
		}
		summary.Indexed++
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM indexing_status`); err != nil {
		return summary, fmt.Errorf("clearing indexing status: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO indexing_status (source, file_mod_time) VALUES (?, ?)`, key, modTime,
	); err != nil {
		return summary, fmt.Errorf("updating indexing status: %w", err)
	}

	return summary, tx.Commit()
}

// Count returns the number of indexed records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// sourceKey identifies a record file across runs started from different
// working directories.
func sourceKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
