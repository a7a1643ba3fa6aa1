package settings

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLite reads settings from a local single-file database, the layout the
// installer wizard writes.
type SQLite struct {
	db      *sql.DB
	ownedDB bool
}

// OpenSQLite opens (and if needed initializes) the settings database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize settings schema: %w", err)
	}

	return &SQLite{db: db, ownedDB: true}, nil
}

// NewSQLiteWithDB wraps an existing database handle; used by tests with a
// mocked *sql.DB.
func NewSQLiteWithDB(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrKeyNotFound
	} else if err != nil {
		return "", fmt.Errorf("settings query failed: %w", err)
	}
	return value, nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	if !s.ownedDB {
		return nil
	}
	return s.db.Close()
}
