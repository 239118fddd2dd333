// Package credstore persists the session's token pair in a small SQLite
// database under the user's data directory, so a login survives restarts.
package credstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS credentials (
	id TEXT PRIMARY KEY,
	access_token TEXT NOT NULL,
	refresh_token TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// Tokens is the persisted credential pair. Zero value means logged out.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Store reads and writes the single credential row.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the credential database at path.
// If path is ":memory:", uses an in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating credential directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening credential database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating credentials table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored tokens, or the zero Tokens when none are stored.
func (s *Store) Load(ctx context.Context) (Tokens, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token FROM credentials WHERE id = 'default'`)

	var t Tokens
	err := row.Scan(&t.AccessToken, &t.RefreshToken)
	if err != nil {
		if err == sql.ErrNoRows {
			return Tokens{}, nil
		}
		return Tokens{}, fmt.Errorf("scanning credentials: %w", err)
	}
	return t, nil
}

// Save replaces the stored tokens.
func (s *Store) Save(ctx context.Context, t Tokens) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO credentials (id, access_token, refresh_token, updated_at)
		VALUES ('default', ?, ?, datetime('now'))`,
		t.AccessToken, t.RefreshToken)
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// Clear removes any stored tokens. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 'default'`)
	if err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}
