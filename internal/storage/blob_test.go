package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// openBackends returns one instance of every Blob implementation, each
// rooted in its own temp directory.
func openBackends(t *testing.T) map[string]Blob {
	t.Helper()

	fileBlob, err := NewFileBlob(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBlob() error = %v", err)
	}
	sqliteBlob, err := OpenSQLite(filepath.Join(t.TempDir(), SQLiteFile), true)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { sqliteBlob.Close() })

	return map[string]Blob{
		BackendFile:   fileBlob,
		BackendSQLite: sqliteBlob,
		BackendMemory: NewMemory(),
	}
}

func TestBlob_GetMissing(t *testing.T) {
	for name, blob := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := blob.Get("devlog-entries")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestBlob_SetReplacesValue(t *testing.T) {
	for name, blob := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := blob.Set("devlog-entries", `[{"id":1}]`); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := blob.Set("devlog-entries", `[]`); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := blob.Get("devlog-entries")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != `[]` {
				t.Errorf("Get() = %q, want []", got)
			}
		})
	}
}

func TestBlob_KeysAreIndependent(t *testing.T) {
	for name, blob := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := blob.Set("a", "1"); err != nil {
				t.Fatalf("Set(a) error = %v", err)
			}
			if err := blob.Set("b", "2"); err != nil {
				t.Fatalf("Set(b) error = %v", err)
			}
			if got, _ := blob.Get("a"); got != "1" {
				t.Errorf("Get(a) = %q, want 1", got)
			}
			if got, _ := blob.Get("b"); got != "2" {
				t.Errorf("Get(b) = %q, want 2", got)
			}
		})
	}
}

func TestFileBlob_RejectsPathKeys(t *testing.T) {
	blob, err := NewFileBlob(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBlob() error = %v", err)
	}

	for _, key := range []string{"", "  ", "../escape", `a\b`, ".."} {
		if err := blob.Set(key, "x"); err == nil {
			t.Errorf("Set(%q) expected error", key)
		}
	}
}

func TestFileBlob_KeepsBackupAndNotifies(t *testing.T) {
	dir := t.TempDir()
	blob, err := NewFileBlob(dir)
	if err != nil {
		t.Fatalf("NewFileBlob() error = %v", err)
	}

	var saved []string
	blob.SetOnSave(func(key string) { saved = append(saved, key) })

	if err := blob.Set("devlog-entries", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := blob.Set("devlog-entries", "v2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	bak, err := os.ReadFile(filepath.Join(dir, "devlog-entries.json.bak"))
	if err != nil {
		t.Fatalf("read .bak: %v", err)
	}
	if string(bak) != "v1" {
		t.Errorf(".bak = %q, want v1", bak)
	}
	if len(saved) != 2 {
		t.Errorf("onSave called %d times, want 2", len(saved))
	}
}

func TestSQLiteBlob_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFile)

	first, err := OpenSQLite(path, false)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := first.Set("devlog-entries", "persisted"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := OpenSQLite(path, false)
	if err != nil {
		t.Fatalf("OpenSQLite() reopen error = %v", err)
	}
	defer second.Close()

	got, err := second.Get("devlog-entries")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "persisted" {
		t.Errorf("Get() = %q, want persisted", got)
	}
}

func TestCheckpointSQLite_FoldsWALIntoDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SQLiteFile)

	live, err := OpenSQLite(path, true)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer live.Close()
	if err := live.Set("devlog-entries", "in the wal"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// The session stays open, as a running TUI would.
	if err := CheckpointSQLite(path); err != nil {
		t.Fatalf("CheckpointSQLite() error = %v", err)
	}

	copyDir := t.TempDir()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	copyPath := filepath.Join(copyDir, SQLiteFile)
	if err := os.WriteFile(copyPath, data, 0600); err != nil {
		t.Fatal(err)
	}

	copied, err := OpenSQLite(copyPath, false)
	if err != nil {
		t.Fatalf("OpenSQLite(copy) error = %v", err)
	}
	defer copied.Close()
	got, err := copied.Get("devlog-entries")
	if err != nil {
		t.Fatalf("Get() on the copied database error = %v", err)
	}
	if got != "in the wal" {
		t.Errorf("Get() = %q, want the value written before the checkpoint", got)
	}
}

func TestCheckpointSQLite_MissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFile)
	if err := CheckpointSQLite(path); err != nil {
		t.Errorf("CheckpointSQLite() error = %v, want nil for a missing database", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("CheckpointSQLite() should not create the database")
	}
}

func TestMemory_FailWrites(t *testing.T) {
	m := NewMemory()
	quota := errors.New("quota exceeded")
	m.FailWrites(quota)

	if err := m.Set("k", "v"); !errors.Is(err, quota) {
		t.Fatalf("Set() error = %v, want quota error", err)
	}
	if m.Writes() != 0 {
		t.Errorf("Writes() = %d, want 0", m.Writes())
	}

	m.FailWrites(nil)
	if err := m.Set("k", "v"); err != nil {
		t.Fatalf("Set() after recovery error = %v", err)
	}
	if m.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", m.Writes())
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{"", false},
		{"file", false},
		{"FILE", false},
		{"sqlite", false},
		{"memory", false},
		{"redis", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			blob, err := Open(Options{Backend: tt.backend, DataDir: t.TempDir()})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open(%q) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
			}
			if blob != nil {
				blob.Close()
			}
		})
	}
}

func TestDataFiles(t *testing.T) {
	if got := DataFiles("file", "devlog-entries"); len(got) != 1 || got[0] != "devlog-entries.json" {
		t.Errorf("DataFiles(file) = %v", got)
	}
	if got := DataFiles("sqlite", "devlog-entries"); len(got) != 1 || got[0] != SQLiteFile {
		t.Errorf("DataFiles(sqlite) = %v", got)
	}
	if got := DataFiles("memory", "devlog-entries"); len(got) != 0 {
		t.Errorf("DataFiles(memory) = %v, want none", got)
	}
}
