// Package storage provides the key-value blob stores that hold the serialized
// journal. A blob store maps a single string key to a single string value;
// writes replace the whole value and there is no partial update.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Get when no value has been written for a key.
var ErrNotFound = errors.New("storage: key not found")

// Blob is a key-value store holding one opaque string per key.
type Blob interface {
	// Get returns the value last written for key, or ErrNotFound.
	Get(key string) (string, error)
	// Set replaces the value for key.
	Set(key, value string) error
	// Close releases any resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFile is the database file name used by the sqlite backend.
const SQLiteFile = "devlog.db"

const (
	dataDirPerm  = 0700
	dataFilePerm = 0600
)

// Options configures Open.
type Options struct {
	Backend string // file (default), sqlite or memory
	DataDir string
	WAL     bool // sqlite only
}

// Open creates the blob store selected by opts.Backend.
func Open(opts Options) (Blob, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewFileBlob(opts.DataDir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(opts.DataDir, SQLiteFile), opts.WAL)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", opts.Backend)
	}
}

// DataFiles returns the files under dataDir that hold the journal for the
// given backend and key. Backup and restore operate on these.
func DataFiles(backend, key string) []string {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendSQLite:
		return []string{SQLiteFile}
	case BackendMemory:
		return nil
	default:
		return []string{FileName(key)}
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("storage key is required")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid storage key: %q", key)
	}
	return nil
}
