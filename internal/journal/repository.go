// Package journal persists one row per backend call so operators can audit
// what the dashboard fetched and when.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ngmaloney/solar-terminal/internal/database"
	"github.com/ngmaloney/solar-terminal/internal/models"
)

// DefaultLimit is used by RecentFetches when limit is not positive.
const DefaultLimit = 50

// Repository handles persistence for fetch records
type Repository struct {
	db *sql.DB
}

// Open opens the journal database at path.
func Open(path string) (*Repository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// RecordFetch appends a fetch record.
func (r *Repository) RecordFetch(ctx context.Context, rec models.FetchRecord) error {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fetch_runs (session_id, seq, endpoint, query, started_at, duration_ms, http_status, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.SessionID,
		int64(rec.Seq),
		rec.Endpoint,
		rec.Query,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.Duration.Milliseconds(),
		rec.HTTPStatus,
		boolToInt(rec.Success),
		rec.Error,
	)
	if err != nil {
		return fmt.Errorf("saving fetch record: %w", err)
	}
	return nil
}

// RecentFetches returns the newest records first.
func (r *Repository) RecentFetches(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, seq, endpoint, query, started_at, duration_ms, http_status, success, error
		FROM fetch_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying fetch records: %w", err)
	}
	defer rows.Close()

	var records []models.FetchRecord
	for rows.Next() {
		var (
			rec        models.FetchRecord
			seq        int64
			startedAt  string
			durationMs int64
			success    int
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &seq, &rec.Endpoint, &rec.Query, &startedAt, &durationMs, &rec.HTTPStatus, &success, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning fetch record: %w", err)
		}
		rec.Seq = uint64(seq)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.Success = success != 0
		rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at %q: %w", startedAt, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading fetch records: %w", err)
	}

	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
