// Package sqlite keeps a local audit trail of every message the
// bridge receives and sends.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/bnema/telemux/internal/domain"
	"github.com/bnema/telemux/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	direction  TEXT NOT NULL,
	update_id  INTEGER NOT NULL DEFAULT 0,
	sender     TEXT NOT NULL DEFAULT '',
	session    TEXT NOT NULL DEFAULT '',
	body       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);
`

// Store is a sqlite-backed audit log.
type Store struct {
	db    *sql.DB
	clock ports.Clock
}

// Open creates or opens the audit database at path.
func Open(path string, clock ports.Clock) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return &Store{db: db, clock: clock}, nil
}

func (s *Store) Record(ctx context.Context, entry domain.AuditEntry) error {
	created := entry.CreatedAt
	if created.IsZero() {
		created = s.clock.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (direction, update_id, sender, session, body, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(entry.Direction), entry.UpdateID, entry.Sender, entry.Session, entry.Body, created,
	)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, direction, update_id, sender, session, body, created_at
		 FROM messages ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var direction string
		if err := rows.Scan(&e.ID, &direction, &e.UpdateID, &e.Sender, &e.Session, &e.Body, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Direction = domain.Direction(direction)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
