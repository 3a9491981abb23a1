// Package database opens the local sqlite file that backs the fetch journal.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the journal tables. Safe to call on an existing database.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fetch_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL DEFAULT 0,
			endpoint TEXT NOT NULL,
			query TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			http_status INTEGER NOT NULL DEFAULT 0,
			success INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_fetch_runs_started_at ON fetch_runs(started_at);
		CREATE INDEX IF NOT EXISTS idx_fetch_runs_session ON fetch_runs(session_id, seq);
	`)
	if err != nil {
		return fmt.Errorf("creating fetch_runs table: %w", err)
	}
	return nil
}
