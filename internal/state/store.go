// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package state persists crawl state in a SQLite database.
// Implements: prd001-crawler (R6);
//
//	docs/ARCHITECTURE § Crawl State.
package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

// Store is a durable visited set plus a history of crawl runs. A crawl
// pointed at the same database resumes where the previous one stopped:
// identifiers marked in an earlier run stay marked (R6.1).
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the crawl-state database at path, creating
// parent directories and the schema as needed (R6.2).
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS visited (
			id TEXT PRIMARY KEY,
			first_seen TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			started TEXT NOT NULL,
			seed TEXT NOT NULL,
			keywords TEXT,
			accepted INTEGER NOT NULL,
			rejected INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			visited INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// MarkIfNew records id as visited and reports whether it was new. The
// INSERT OR IGNORE makes the check and the insert a single atomic
// statement (R6.3), so two processes sharing a database cannot both
// claim the same identifier.
func (s *Store) MarkIfNew(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO visited (id, first_seen) VALUES (?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("marking %s visited: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking %s visited: %w", id, err)
	}
	return n > 0, nil
}

// VisitedCount returns the number of identifiers marked across all runs.
func (s *Store) VisitedCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM visited`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting visited: %w", err)
	}
	return n, nil
}

// Run is one crawl recorded in the history table (R6.4).
type Run struct {
	Started  time.Time
	Seed     string
	Keywords []string
	Summary  types.CrawlSummary
}

// RecordRun appends a crawl to the history table.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	keywordsJSON, _ := json.Marshal(run.Keywords)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started, seed, keywords, accepted, rejected, failed, visited)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Started.UTC().Format(time.RFC3339), run.Seed, string(keywordsJSON),
		run.Summary.Accepted, run.Summary.Rejected, run.Summary.Failed, run.Summary.Visited,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Runs returns the recorded crawls, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT started, seed, keywords, accepted, rejected, failed, visited
		 FROM runs ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run          Run
			started      string
			keywordsJSON string
		)
		if err := rows.Scan(&started, &run.Seed, &keywordsJSON,
			&run.Summary.Accepted, &run.Summary.Rejected,
			&run.Summary.Failed, &run.Summary.Visited); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Started, _ = time.Parse(time.RFC3339, started)
		if keywordsJSON != "" {
			if err := json.Unmarshal([]byte(keywordsJSON), &run.Keywords); err != nil {
				return nil, fmt.Errorf("parsing run keywords: %w", err)
			}
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}
	return runs, nil
}
