package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"devlog/internal/fsutil"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
);
`

// SQLiteBlob keeps values in a single kv table of a SQLite database.
type SQLiteBlob struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path and makes
// sure the kv table exists. Pass ":memory:" for a throwaway database.
func OpenSQLite(path string, enableWAL bool) (*SQLiteBlob, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), dataDirPerm); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	params := url.Values{}
	if enableWAL && path != ":memory:" {
		params.Add("_journal_mode", "WAL")
	}
	params.Add("_synchronous", "NORMAL")

	dsn := path
	if len(params) > 0 {
		if strings.Contains(dsn, "?") {
			dsn += "&" + params.Encode()
		} else {
			dsn += "?" + params.Encode()
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %q: %w", path, err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteBlob{db: db}, nil
}

// Get reads the value for key.
func (s *SQLiteBlob) Get(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

// Set replaces the value for key.
func (s *SQLiteBlob) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%s', 'now'))
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteBlob) Close() error {
	return s.db.Close()
}

// Checkpoint copies committed WAL pages into the main database file and
// truncates the -wal file, so the .db file alone holds every write.
func (s *SQLiteBlob) Checkpoint() error {
	if _, err := s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}

// CheckpointSQLite checkpoints the database at path through a separate
// connection, for use while another process may hold it open. A missing
// database is not an error.
func CheckpointSQLite(path string) error {
	if !fsutil.Exists(path) {
		return nil
	}
	db, err := OpenSQLite(path, true)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Checkpoint()
}

