// Package history provides an optional run log for the polaris service:
// every analyze/suggest call can be summarized into a local SQLite database
// so operators can review what the service has been asked and what it
// recommended. The log records outcomes only; it never feeds back into
// scoring, which stays stateless between calls.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    op          TEXT NOT NULL,
    task_count  INTEGER NOT NULL,
    cycle_count INTEGER NOT NULL,
    top_id      TEXT NOT NULL DEFAULT '',
    top_score   REAL NOT NULL DEFAULT 0
);
`

// Run is one recorded analyze/suggest invocation.
type Run struct {
	ID         int64
	At         time.Time
	Op         string
	TaskCount  int
	CycleCount int
	TopID      string
	TopScore   float64
}

// Store is a SQLite-backed run log in WAL mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode and
// busy timeout, and creates the schema if it does not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// SQLite only supports a single writer; one connection avoids
	// SQLITE_BUSY contention between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts one run summary. A nil *Store is a valid no-op recorder,
// mirroring the telemetry emitter, so callers don't branch on whether
// history is enabled.
func (s *Store) Record(ctx context.Context, run Run) error {
	if s == nil {
		return nil
	}
	const q = `
		INSERT INTO runs (at, op, task_count, cycle_count, top_id, top_score)
		VALUES (?, ?, ?, ?, ?, ?)`
	at := run.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	if _, err := s.db.ExecContext(ctx, q, at, run.Op, run.TaskCount, run.CycleCount, run.TopID, run.TopScore); err != nil {
		return fmt.Errorf("history: record %s run: %w", run.Op, err)
	}
	return nil
}

// Recent returns the most recent runs, newest first, up to limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if s == nil {
		return nil, nil
	}
	const q = `
		SELECT id, at, op, task_count, cycle_count, top_id, top_score
		FROM runs ORDER BY id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.At, &r.Op, &r.TaskCount, &r.CycleCount, &r.TopID, &r.TopScore); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return runs, nil
}

// Close closes the underlying database. Nil-safe.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
