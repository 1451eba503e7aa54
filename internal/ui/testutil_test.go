package ui

import (
	"strings"
	"testing"
	"time"

	"devlog/internal/carousel"
	"devlog/internal/config"
	"devlog/internal/journal"
	"devlog/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// createTestController returns a controller over the seed entries, backed
// by an in-memory blob with a fixed clock.
func createTestController(t *testing.T) (*carousel.Controller, *storage.Memory) {
	t.Helper()
	blob := storage.NewMemory()
	store := journal.NewStore(blob, journal.DefaultKey)
	store.SetNowFunc(func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	})
	store.Load()
	return carousel.New(store), blob
}

// createTestApp returns a sized App over the seed entries.
func createTestApp(t *testing.T, cfg *AppConfig) (*App, *storage.Memory) {
	t.Helper()
	setupTest(t)
	ctrl, blob := createTestController(t)
	if cfg == nil {
		cfg = &AppConfig{
			Keys:             &config.KeysConfig{},
			ConfirmDeletions: true,
			ShowHelpBar:      true,
		}
	}
	app := NewApp(ctrl, createTestStyles(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app, blob
}

// press sends a key to the app. Named keys ("left", "esc", "ctrl+s", ...)
// map to their key types; anything else is sent as runes.
func press(a *App, k string) {
	a.Update(keyMsg(k))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
