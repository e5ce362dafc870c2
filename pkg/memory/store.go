// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package memory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// WindowTurns is the number of most-recent turns exposed to the reasoning
// engine. It is a policy constant: the full log stays in the database for
// audit, but nothing older than this is ever part of a prompt.
const WindowTurns = 5

// Turn is one role-tagged message in a session's log.
type Turn struct {
	Role      string // "user", "assistant" or "tool"
	Content   string
	CreatedAt time.Time
}

// Store is the durable per-session conversation log. Turns are append-only;
// nothing mutates or deletes a persisted turn.
type Store struct {
	db *sql.DB
}

// NewStore creates/opens the conversation database at path.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Single-process store. One shared connection avoids writer lock
	// contention with SQLite under concurrent goroutines.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) init() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA busy_timeout=5000;`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_key TEXT PRIMARY KEY,
			channel TEXT NOT NULL DEFAULT '',
			created_at_ms INTEGER NOT NULL,
			updated_at_ms INTEGER NOT NULL,
			turn_count INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_key TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('user','assistant','tool')),
			content TEXT NOT NULL,
			created_at_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS turns_session_idx ON turns(session_key, id DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// EnsureSession resolves a chat identity to its session row, creating it on
// first contact. Repeated calls with the same key are idempotent.
func (s *Store) EnsureSession(ctx context.Context, sessionKey, channel string) error {
	now := time.Now().UnixMilli()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions(session_key, channel, created_at_ms, updated_at_ms)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(session_key) DO UPDATE SET channel = excluded.channel, updated_at_ms = excluded.updated_at_ms`,
		sessionKey, channel, now, now)
	if err != nil {
		return fmt.Errorf("ensure session %s: %w", sessionKey, err)
	}
	return nil
}

// AppendTurn durably persists one turn at the end of the session's log.
// Storage errors propagate to the caller; nothing is dropped silently.
func (s *Store) AppendTurn(ctx context.Context, sessionKey string, turn Turn) error {
	switch turn.Role {
	case "user", "assistant", "tool":
	default:
		return fmt.Errorf("unknown turn role %q", turn.Role)
	}

	createdAt := turn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO turns(session_key, role, content, created_at_ms) VALUES(?, ?, ?, ?)`,
		sessionKey, turn.Role, turn.Content, createdAt.UnixMilli()); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET turn_count = turn_count + 1, updated_at_ms = ? WHERE session_key = ?`,
		createdAt.UnixMilli(), sessionKey); err != nil {
		return fmt.Errorf("bump session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// Window returns the most recent WindowTurns turns of the session in
// chronological order. The result is always a suffix of the full log.
func (s *Store) Window(ctx context.Context, sessionKey string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, created_at_ms FROM turns
		WHERE session_key = ?
		ORDER BY id DESC LIMIT ?`,
		sessionKey, WindowTurns)
	if err != nil {
		return nil, fmt.Errorf("read window: %w", err)
	}
	defer rows.Close()

	var reversed []Turn
	for rows.Next() {
		var t Turn
		var ms int64
		if err := rows.Scan(&t.Role, &t.Content, &ms); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.CreatedAt = time.UnixMilli(ms)
		reversed = append(reversed, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}

	turns := make([]Turn, len(reversed))
	for i, t := range reversed {
		turns[len(reversed)-1-i] = t
	}
	return turns, nil
}

// TurnCount reports the total number of persisted turns for the session.
func (s *Store) TurnCount(ctx context.Context, sessionKey string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM turns WHERE session_key = ?`, sessionKey).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count turns: %w", err)
	}
	return n, nil
}
