package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amminlb/corporateai/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcript (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL,
	direction  TEXT NOT NULL,
	body       TEXT NOT NULL,
	admitted   INTEGER NOT NULL DEFAULT 0,
	delivered  INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcript_user ON transcript(user_id, created_at);
`

// TranscriptStore is the durable message audit log backing the admin
// dashboard. Sessions themselves stay in memory; only the transcript
// survives restarts.
type TranscriptStore struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the transcript database at path.
func Open(path string) (*TranscriptStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize transcript schema: %w", err)
	}
	return &TranscriptStore{db: db}, nil
}

// Close closes the underlying database.
func (s *TranscriptStore) Close() error {
	return s.db.Close()
}

// Record appends one transcript entry.
func (s *TranscriptStore) Record(ctx context.Context, entry domain.TranscriptEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcript (user_id, direction, body, admitted, delivered, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.UserID, string(entry.Direction), entry.Body, entry.Admitted, entry.Delivered, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record transcript entry: %w", err)
	}
	return nil
}

// RecentByUser returns the latest entries for a user, newest first.
func (s *TranscriptStore) RecentByUser(ctx context.Context, userID string, limit int) ([]domain.TranscriptEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, direction, body, admitted, delivered, created_at
		 FROM transcript WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var entries []domain.TranscriptEntry
	for rows.Next() {
		var e domain.TranscriptEntry
		var direction string
		if err := rows.Scan(&e.UserID, &direction, &e.Body, &e.Admitted, &e.Delivered, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcript row: %w", err)
		}
		e.Direction = domain.TranscriptDirection(direction)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
