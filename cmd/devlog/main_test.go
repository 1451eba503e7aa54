package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"devlog/internal/export"
)

// runCLI executes the command tree against a temporary data directory and
// returns stdout.
func runCLI(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(dataDir, "config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := os.WriteFile(cfgPath, []byte("log:\n  level: off\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--data-dir", dataDir}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dataDir, args...)
	if err != nil {
		t.Fatalf("devlog %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestList_SeedEntries(t *testing.T) {
	out := mustRun(t, t.TempDir(), "list")

	want := []string{
		" 1. 2026-02-05  🚀  React State Management  #React #Hooks",
		" 2. 2026-02-04  💡  CSS Grid Deep Dive  #CSS #Layout",
		" 3. 2026-02-03  🌿  Git Branching Strategy  #Git #Workflow",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("list output missing %q\n%s", line, out)
		}
	}
}

func TestAdd_PersistsAndPrepends(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "add", "--title", "CLI entry", "--tags", "go, cobra", "--content", "Added from the shell.")
	if !strings.Contains(out, "✓ Added 📝 CLI entry") {
		t.Errorf("add output = %q", out)
	}

	if _, err := os.Stat(filepath.Join(dir, "devlog-entries.json")); err != nil {
		t.Fatalf("journal file not written: %v", err)
	}

	out = mustRun(t, dir, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("list has %d lines, want 4\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "CLI entry  #go #cobra") {
		t.Errorf("first line = %q, want the new entry", lines[0])
	}
	if !strings.Contains(lines[0], time.Now().UTC().Format("2006-01-02")) {
		t.Errorf("first line = %q, want today's date", lines[0])
	}
}

func TestAdd_ContentFromStdin(t *testing.T) {
	dir := t.TempDir()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("line one\nline two\n"))
	cmd.SetArgs([]string{"--config", filepath.Join(dir, "none.yaml"), "--data-dir", dir,
		"add", "--title", "Piped", "--mood", "🔥", "--content", "-"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("add: %v", err)
	}

	data := mustRun(t, dir, "export", "--format", "json")
	var doc export.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		t.Fatalf("invalid export: %v", err)
	}
	if doc.Entries[0].Content != "line one\nline two" || doc.Entries[0].Mood != "🔥" {
		t.Errorf("Entries[0] = %+v", doc.Entries[0])
	}
}

func TestAdd_RequiresTitle(t *testing.T) {
	if _, err := runCLI(t, t.TempDir(), "add", "--content", "x"); err == nil {
		t.Error("add without --title should fail")
	}
}

func TestShow(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "show", "2", "--style", "notty")
	if !strings.Contains(out, "CSS Grid Deep Dive") {
		t.Errorf("show 2 = %q", out)
	}

	out = mustRun(t, dir, "show", "--style", "notty")
	if !strings.Contains(out, "React State Management") {
		t.Errorf("show (default newest) = %q", out)
	}

	for _, arg := range []string{"0", "4", "abc"} {
		if _, err := runCLI(t, dir, "show", arg); err == nil {
			t.Errorf("show %s should fail", arg)
		}
	}
}

func TestExport_ToFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out", "journal.md")

	out := mustRun(t, dir, "export", "--output", outPath)
	if !strings.Contains(out, "Exported 3 entries") {
		t.Errorf("export output = %q", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Dev Journal") {
		t.Errorf("export file = %q", data)
	}

	if _, err := runCLI(t, dir, "export", "--format", "csv"); err == nil {
		t.Error("export --format csv should fail")
	}
}

func TestBackupAndRestore(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "backup", "--list")
	if !strings.Contains(out, "No backups available.") {
		t.Errorf("backup --list on empty dir = %q", out)
	}

	mustRun(t, dir, "add", "--title", "Before backup")
	out = mustRun(t, dir, "backup")
	if !strings.Contains(out, "✓ Backup created:") || !strings.Contains(out, "Entries: 4") {
		t.Errorf("backup output = %q", out)
	}

	mustRun(t, dir, "add", "--title", "After backup")
	out = mustRun(t, dir, "restore", "--latest")
	if !strings.Contains(out, "✓ Restored from") {
		t.Errorf("restore output = %q", out)
	}

	out = mustRun(t, dir, "list")
	if strings.Contains(out, "After backup") || !strings.Contains(out, "Before backup") {
		t.Errorf("list after restore = %q", out)
	}

	out = mustRun(t, dir, "backup", "--prune", "0")
	if !strings.Contains(out, "Removed 2 old backup(s).") {
		t.Errorf("prune output = %q", out)
	}
}

func TestRestore_Args(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCLI(t, dir, "restore"); err == nil {
		t.Error("restore without a name or --latest should fail")
	}
	if _, err := runCLI(t, dir, "restore", "--latest", "2026-03-14_093000_000"); err == nil {
		t.Error("restore with both a name and --latest should fail")
	}
	if _, err := runCLI(t, dir, "restore", "--latest"); err == nil {
		t.Error("restore --latest without backups should fail")
	}
}

func TestBackend_SQLite(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "--backend", "sqlite", "add", "--title", "Stored in SQLite")
	if _, err := os.Stat(filepath.Join(dir, "devlog.db")); err != nil {
		t.Fatalf("database not created: %v", err)
	}

	out := mustRun(t, dir, "--backend", "sqlite", "list")
	if !strings.Contains(out, "Stored in SQLite") {
		t.Errorf("sqlite list = %q", out)
	}

	// The file backend is separate.
	out = mustRun(t, dir, "list")
	if strings.Contains(out, "Stored in SQLite") {
		t.Error("file backend should not see sqlite entries")
	}
}

func TestBackupAndRestore_SQLite(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "--backend", "sqlite", "add", "--title", "Kept")
	out := mustRun(t, dir, "--backend", "sqlite", "backup")
	if !strings.Contains(out, "✓ Backup created:") {
		t.Errorf("backup output = %q", out)
	}

	mustRun(t, dir, "--backend", "sqlite", "add", "--title", "Discarded")
	mustRun(t, dir, "--backend", "sqlite", "restore", "--latest")

	out = mustRun(t, dir, "--backend", "sqlite", "list")
	if !strings.Contains(out, "Kept") || strings.Contains(out, "Discarded") {
		t.Errorf("list after restore = %q", out)
	}
}

func TestBackend_Memory(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "--backend", "memory", "add", "--title", "Ephemeral")
	out := mustRun(t, dir, "--backend", "memory", "list")
	if strings.Contains(out, "Ephemeral") {
		t.Error("memory backend should not persist across runs")
	}

	if _, err := runCLI(t, dir, "--backend", "memory", "backup"); err == nil {
		t.Error("backup of the memory backend should fail")
	}
}

func TestBackend_Unknown(t *testing.T) {
	if _, err := runCLI(t, t.TempDir(), "--backend", "redis", "list"); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestConfigFileIsHonored(t *testing.T) {
	dir := t.TempDir()
	cfg := "storage:\n  key: work-log\nux:\n  default_mood: \"🛠\"\nlog:\n  level: off\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0600); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, dir, "add", "--title", "Configured")
	if !strings.Contains(out, "🛠 Configured") {
		t.Errorf("add output = %q, want configured default mood", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "work-log.json")); err != nil {
		t.Errorf("configured key not used: %v", err)
	}
}

func TestConfigCmd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	out := mustRun(t, dir, "config", "path")
	if strings.TrimSpace(out) != cfgPath {
		t.Errorf("config path = %q, want %q", out, cfgPath)
	}

	if _, err := runCLI(t, dir, "config", "init"); err == nil {
		t.Error("config init over an existing file should fail")
	}

	out = mustRun(t, dir, "config", "init", "--force")
	if !strings.Contains(out, "✓ Wrote default config to "+cfgPath) {
		t.Errorf("config init output = %q", out)
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "key: devlog-entries") {
		t.Errorf("config file = %q, want default storage key", data)
	}

	// The written defaults load back cleanly.
	mustRun(t, dir, "list")
}

func TestVersion(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	if !strings.Contains(out, "devlog version dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestCompletion(t *testing.T) {
	out := mustRun(t, t.TempDir(), "completion", "bash")
	if !strings.Contains(out, "devlog") {
		t.Error("bash completion should mention the command name")
	}
	if _, err := runCLI(t, t.TempDir(), "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{time.Minute + time.Second, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{3 * time.Hour, "3 hours ago"},
		{25 * time.Hour, "1 day ago"},
		{15 * 24 * time.Hour, "2 weeks ago"},
	}
	for _, tt := range tests {
		if got := formatAge(time.Now().Add(-tt.ago)); got != tt.want {
			t.Errorf("formatAge(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}
