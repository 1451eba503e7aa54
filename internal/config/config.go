// Package config handles configuration loading and defaults for devlog.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/devlog/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"devlog/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.devlog)
	DataDir string `yaml:"data_dir,omitempty"`

	// Storage selects where the journal is kept
	Storage StorageConfig `yaml:"storage,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Log configures the log file
	Log LogConfig `yaml:"log,omitempty"`
}

// StorageConfig defines the blob store holding the journal.
type StorageConfig struct {
	// Backend is "file" (JSON file in the data dir) or "sqlite"
	Backend string `yaml:"backend,omitempty"`

	// Key is the name the entry list is stored under
	Key string `yaml:"key,omitempty"`

	// SQLiteWAL enables write-ahead logging for the sqlite backend
	SQLiteWAL bool `yaml:"sqlite_wal,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background color (hex)
	Background string `yaml:"background,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "left,h"
type KeysConfig struct {
	Quit string `yaml:"quit,omitempty"` // default: "q,ctrl+c"
	Help string `yaml:"help,omitempty"` // default: "?"

	// Carousel keys
	Prev    string `yaml:"prev,omitempty"`    // default: "left,h"
	Next    string `yaml:"next,omitempty"`    // default: "right,l"
	Expand  string `yaml:"expand,omitempty"`  // default: "enter,space"
	Add     string `yaml:"add,omitempty"`     // default: "a,n"
	Edit    string `yaml:"edit,omitempty"`    // default: "e"
	Delete  string `yaml:"delete,omitempty"`  // default: "x,d"
	Gallery string `yaml:"gallery,omitempty"` // default: "g"

	// Form keys
	Submit    string `yaml:"submit,omitempty"`     // default: "ctrl+s"
	Cancel    string `yaml:"cancel,omitempty"`     // default: "esc"
	NextField string `yaml:"next_field,omitempty"` // default: "tab"
	PrevField string `yaml:"prev_field,omitempty"` // default: "shift+tab"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows a yes/no prompt before deleting an entry
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// DefaultMood is the glyph used when an entry is saved without one
	DefaultMood string `yaml:"default_mood,omitempty"` // default: "📝"

	// ShowHelpBar shows key hints at the bottom of the screen
	ShowHelpBar bool `yaml:"show_help_bar,omitempty"` // default: true
}

// LogConfig defines the rotating log file.
type LogConfig struct {
	// Level is debug, info, warn, error or off
	Level string `yaml:"level,omitempty"` // default: "info"

	// File overrides the log path (default: <data_dir>/logs/devlog.log)
	File string `yaml:"file,omitempty"`

	// MaxSizeMB rotates the file after this many megabytes
	MaxSizeMB int `yaml:"max_size_mb,omitempty"` // default: 5

	// MaxBackups is how many rotated files to keep
	MaxBackups int `yaml:"max_backups,omitempty"` // default: 3
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: StorageConfig{
			Backend:   "file",
			Key:       "devlog-entries",
			SQLiteWAL: true,
		},
		Theme: ThemeConfig{
			Primary:    "#7C3AED", // Violet
			Accent:     "#10B981", // Emerald
			Muted:      "#6B7280", // Gray
			Background: "",        // Terminal default
			Text:       "",        // Terminal default
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			ConfirmDeletions: true,
			DefaultMood:      "📝",
			ShowHelpBar:      true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devlog"
	}
	return filepath.Join(home, ".devlog")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "devlog")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "devlog")
}

// Path returns the default config file path.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from the default path, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads configuration from path, merging with defaults. A missing
// file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)
	return cfg, nil
}

// mergeNonEmpty applies non-empty values from other to c.
// Booleans are left to mergeFromYAML, which knows whether they were present.
func (c *Config) mergeNonEmpty(other *Config) {
	setString(&c.DataDir, other.DataDir)

	setString(&c.Storage.Backend, other.Storage.Backend)
	setString(&c.Storage.Key, other.Storage.Key)

	setString(&c.Theme.Primary, other.Theme.Primary)
	setString(&c.Theme.Accent, other.Theme.Accent)
	setString(&c.Theme.Muted, other.Theme.Muted)
	setString(&c.Theme.Background, other.Theme.Background)
	setString(&c.Theme.Text, other.Theme.Text)

	k, o := &c.Keys, &other.Keys
	setString(&k.Quit, o.Quit)
	setString(&k.Help, o.Help)
	setString(&k.Prev, o.Prev)
	setString(&k.Next, o.Next)
	setString(&k.Expand, o.Expand)
	setString(&k.Add, o.Add)
	setString(&k.Edit, o.Edit)
	setString(&k.Delete, o.Delete)
	setString(&k.Gallery, o.Gallery)
	setString(&k.Submit, o.Submit)
	setString(&k.Cancel, o.Cancel)
	setString(&k.NextField, o.NextField)
	setString(&k.PrevField, o.PrevField)

	setString(&c.UX.DefaultMood, other.UX.DefaultMood)

	setString(&c.Log.Level, other.Log.Level)
	setString(&c.Log.File, other.Log.File)
	if other.Log.MaxSizeMB > 0 {
		c.Log.MaxSizeMB = other.Log.MaxSizeMB
	}
	if other.Log.MaxBackups > 0 {
		c.Log.MaxBackups = other.Log.MaxBackups
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Without a parsed document we cannot tell false from absent, so
	// booleans keep their defaults.
	if doc == nil || len(doc.Content) == 0 {
		return
	}

	if yamlHasPath(doc, "storage", "sqlite_wal") {
		c.Storage.SQLiteWAL = other.Storage.SQLiteWAL
	}
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "ux", "show_help_bar") {
		c.UX.ShowHelpBar = other.UX.ShowHelpBar
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return expandHome(c.DataDir)
}

// GetLogFile returns the resolved log file path.
func (c *Config) GetLogFile() string {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	return filepath.Join(c.GetDataDir(), "logs", "devlog.log")
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
