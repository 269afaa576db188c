package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/lox/skyra/internal/session"
)

// Store is the SQLite-backed session.Store.
type Store struct {
	db         *sql.DB
	maxEntries int
	idleTTL    time.Duration
	now        func() time.Time
}

var _ session.Store = (*Store)(nil)

// New wraps db. A maxEntries <= 0 keeps every message and an idleTTL <= 0
// never expires a session.
func New(db *sql.DB, maxEntries int, idleTTL time.Duration) *Store {
	return &Store{db: db, maxEntries: maxEntries, idleTTL: idleTTL, now: time.Now}
}

// cutoff is the oldest last_seen a live session may have.
func (s *Store) cutoff() int64 {
	if s.idleTTL <= 0 {
		return math.MinInt64
	}
	return s.now().Add(-s.idleTTL).UTC().UnixNano()
}

// Get returns the history of id. Sessions idle past the TTL read as empty
// even before DeleteExpired removes them.
func (s *Store) Get(ctx context.Context, id string) ([]session.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.role, m.content, m.created_at
		FROM chat_messages m
		JOIN chat_sessions cs ON cs.session_id = m.session_id
		WHERE m.session_id = ? AND cs.last_seen >= ?
		ORDER BY m.id ASC
	`, id, s.cutoff())
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var entries []session.Entry
	for rows.Next() {
		var e session.Entry
		var created int64
		if err := rows.Scan(&e.Role, &e.Content, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Append(ctx context.Context, id string, entries ...session.Entry) error {
	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// An expired session starts over.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM chat_messages
		WHERE session_id IN (SELECT session_id FROM chat_sessions WHERE session_id = ? AND last_seen < ?)
	`, id, s.cutoff()); err != nil {
		return fmt.Errorf("reset expired session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO chat_sessions (session_id, created_at, last_seen)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET last_seen = excluded.last_seen
	`, id, now.UnixNano(), now.UnixNano()); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	for _, e := range entries {
		created := e.CreatedAt
		if created.IsZero() {
			created = now
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chat_messages (session_id, role, content, created_at)
			VALUES (?, ?, ?, ?)
		`, id, e.Role, e.Content, created.UnixNano()); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}

	if s.maxEntries > 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM chat_messages
			WHERE session_id = ? AND id NOT IN (
				SELECT id FROM chat_messages WHERE session_id = ? ORDER BY id DESC LIMIT ?
			)
		`, id, id, s.maxEntries); err != nil {
			return fmt.Errorf("trim messages: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteExpired removes sessions idle for longer than ttl along with their
// messages, returning the number of sessions removed.
func (s *Store) DeleteExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := s.now().Add(-ttl).UTC().UnixNano()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM chat_messages
		WHERE session_id IN (SELECT session_id FROM chat_sessions WHERE last_seen < ?)
	`, cutoff); err != nil {
		return 0, fmt.Errorf("delete messages: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE last_seen < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// CountSessions returns the number of stored sessions.
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_sessions`).Scan(&n)
	return n, err
}
