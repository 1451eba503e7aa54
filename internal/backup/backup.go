// Package backup provides backup and restore functionality for devlog.
// It manages timestamped copies of the journal's data files.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"devlog/internal/fsutil"
)

// Version constants for the backup format.
const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"

	nameLayout = "2006-01-02_150405"
	filePerm   = 0600
)

// ErrNoBackups is returned by RestoreLatest when nothing has been backed up.
var ErrNoBackups = errors.New("no backups available")

var sqliteHeader = []byte("SQLite format 3\x00")

// Manager handles backup and restore operations.
type Manager struct {
	dataDir    string   // Path to data directory (e.g., ~/.devlog)
	backupDir  string   // Path to backups directory (e.g., ~/.devlog/backups)
	appVersion string   // Application version for manifest
	files      []string // Data file names relative to dataDir
	now        func() time.Time
	prepare    func() error
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo contains summary information about a backup.
type BackupInfo struct {
	Name      string         // Directory name (2026-03-14_093000_123)
	Path      string         // Full path to backup directory
	CreatedAt time.Time      // When the backup was created
	Files     []string       // Data files captured
	Stats     map[string]int // Statistics (entries)
}

// Entries returns the number of journal entries recorded at backup time,
// or -1 when unknown.
func (b BackupInfo) Entries() int {
	if n, ok := b.Stats["entries"]; ok {
		return n
	}
	return -1
}

// NewManager creates a backup manager for the given data files, usually
// storage.DataFiles(backend, key).
func NewManager(dataDir, appVersion string, files []string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
		files:      append([]string(nil), files...),
		now:        time.Now,
	}
}

// SetNowFunc sets the clock used to name backups. Passing nil restores
// time.Now.
func (m *Manager) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	m.now = now
}

// SetPrepare registers a hook run before data files are copied, such as a
// SQLite WAL checkpoint. An error aborts the backup.
func (m *Manager) SetPrepare(fn func() error) {
	m.prepare = fn
}

// Dir returns the directory holding all backups.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create creates a new backup of all data files.
// Returns the backup name (timestamp format) on success.
func (m *Manager) Create() (string, error) {
	if m.prepare != nil {
		if err := m.prepare(); err != nil {
			return "", fmt.Errorf("failed to prepare data files: %w", err)
		}
	}

	// Ensure backup directory exists
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Name from the current timestamp with milliseconds; bump past a
	// backup taken in the same millisecond.
	now := m.now().Truncate(time.Millisecond)
	name := formatBackupName(now)
	for fsutil.Exists(filepath.Join(m.backupDir, name)) {
		now = now.Add(time.Millisecond)
		name = formatBackupName(now)
	}
	backupPath := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	// Copy data files
	copiedFiles := []string{}
	stats := make(map[string]int)

	for _, filename := range m.files {
		srcPath := filepath.Join(m.dataDir, filename)
		dstPath := filepath.Join(backupPath, filename)

		// Skip if source file doesn't exist
		if !fsutil.Exists(srcPath) {
			continue
		}

		if err := fsutil.CopyFileAtomic(srcPath, dstPath, filePerm); err != nil {
			// Clean up on failure
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", filename, err)
		}

		copiedFiles = append(copiedFiles, filename)

		if count, err := countEntries(srcPath); err == nil {
			stats["entries"] = count
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copiedFiles,
		Stats:      stats,
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	if err := writeJSON(manifestPath, manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, sorted by creation time (newest first).
func (m *Manager) List() ([]BackupInfo, error) {
	if !fsutil.Exists(m.backupDir) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.info(entry.Name())
		if err != nil {
			continue // Skip invalid backups
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore restores data from a specific backup.
// It creates a safety backup before restoring.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if !fsutil.Exists(backupPath) {
		return fmt.Errorf("backup not found: %s", name)
	}

	// Read manifest to know which files to restore
	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		// Fall back to the configured file list if manifest is missing
		manifest.Files = m.files
	}

	// Validate before touching live data
	for _, filename := range manifest.Files {
		if err := validateDataFile(filepath.Join(backupPath, filename)); err != nil {
			return fmt.Errorf("backup file %s is invalid: %w", filename, err)
		}
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, filename := range manifest.Files {
		srcPath := filepath.Join(backupPath, filename)
		dstPath := filepath.Join(m.dataDir, filename)

		// Skip if backup file doesn't exist
		if !fsutil.Exists(srcPath) {
			continue
		}

		// A leftover WAL would be replayed over the restored database.
		if filepath.Ext(filename) == ".db" {
			for _, sidecar := range []string{dstPath + "-wal", dstPath + "-shm"} {
				if err := os.Remove(sidecar); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to remove %s (safety backup: %s): %w", filepath.Base(sidecar), safetyName, err)
				}
			}
		}

		if err := fsutil.CopyFileAtomic(srcPath, dstPath, filePerm); err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	return nil
}

// RestoreLatest restores from the most recent backup and returns its name.
func (m *Manager) RestoreLatest() (string, error) {
	backups, err := m.List()
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", ErrNoBackups
	}

	name := backups[0].Name
	return name, m.Restore(name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if !fsutil.Exists(backupPath) {
		return fmt.Errorf("backup not found: %s", name)
	}

	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the N most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, backup := range backups[keepCount:] {
		if err := m.Delete(backup.Name); err != nil {
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}

// GetBackup returns information about a specific backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if !fsutil.Exists(filepath.Join(m.backupDir, name)) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.info(name)
}

func (m *Manager) info(name string) (*BackupInfo, error) {
	backupPath := filepath.Join(m.backupDir, name)

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		// Try to parse timestamp from directory name
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Files:     manifest.Files,
		Stats:     manifest.Stats,
	}, nil
}

// Helper functions

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

// writeJSON writes a value as JSON to a file.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, filePerm)
}

// readJSON reads JSON from a file into a value.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// validateDataFile checks that a backed-up file looks like what its
// extension says. A missing file is fine.
func validateDataFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	switch filepath.Ext(path) {
	case ".json":
		var v interface{}
		return json.Unmarshal(data, &v)
	case ".db":
		if len(data) > 0 && !bytes.HasPrefix(data, sqliteHeader) {
			return fmt.Errorf("not a SQLite database")
		}
	}
	return nil
}

// countEntries counts entries in a JSON journal file.
func countEntries(path string) (int, error) {
	if filepath.Ext(path) != ".json" {
		return 0, fmt.Errorf("not a JSON journal: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func formatBackupName(t time.Time) string {
	return fmt.Sprintf("%s_%03d", t.Format(nameLayout), t.Nanosecond()/1e6)
}

// parseBackupName parses a backup directory name into a timestamp.
// Supports both 2006-01-02_150405 and 2006-01-02_150405_XXX.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		baseTime, err := time.ParseInLocation(nameLayout, name[:17], time.Local)
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}

	return time.ParseInLocation(nameLayout, name, time.Local)
}
