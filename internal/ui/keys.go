// Package ui provides the terminal user interface for devlog.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and user remapping.
package ui

import (
	"strings"

	"devlog/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys. "space" is accepted as
// an alias for the literal space key.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed == "space" {
			trimmed = " "
		}
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// keyNames maps key strings to the glyphs shown in help text.
var keyNames = map[string]string{
	"left":  "←",
	"right": "→",
	"up":    "↑",
	"down":  "↓",
	" ":     "space",
}

// keyLabel renders keys for help text, e.g. "←/h".
func keyLabel(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if name, ok := keyNames[k]; ok {
			k = name
		}
		parts[i] = k
	}
	return strings.Join(parts, "/")
}

// binding builds a key binding whose help label lists its actual keys, so
// remapped keys show up in the help bar and overlay.
func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keyLabel(keys), desc),
	)
}

// =============================================================================
// Carousel Keys
// =============================================================================

// CarouselKeyMap defines keys available while browsing cards.
type CarouselKeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Expand  key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Gallery key.Binding
	Jump    key.Binding
}

// DefaultCarouselKeyMap returns the default carousel key bindings.
func DefaultCarouselKeyMap() CarouselKeyMap {
	return NewCarouselKeyMap(&config.KeysConfig{})
}

// NewCarouselKeyMap creates carousel key bindings from config.
func NewCarouselKeyMap(cfg *config.KeysConfig) CarouselKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return CarouselKeyMap{
		Quit:    binding(parseKeys(cfg.Quit, "q", "ctrl+c"), "quit"),
		Help:    binding(parseKeys(cfg.Help, "?"), "help"),
		Prev:    binding(parseKeys(cfg.Prev, "left", "h"), "prev"),
		Next:    binding(parseKeys(cfg.Next, "right", "l"), "next"),
		Expand:  binding(parseKeys(cfg.Expand, "enter", " "), "expand"),
		Add:     binding(parseKeys(cfg.Add, "a", "n"), "add"),
		Edit:    binding(parseKeys(cfg.Edit, "e"), "edit"),
		Delete:  binding(parseKeys(cfg.Delete, "x", "d"), "delete"),
		Gallery: binding(parseKeys(cfg.Gallery, "g"), "gallery"),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump"),
		),
	}
}

// ShortHelp returns the short help for the carousel (implements help.KeyMap).
func (k CarouselKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Expand, k.Add, k.Edit, k.Delete, k.Gallery, k.Help}
}

// FullHelp returns the full help for the carousel (implements help.KeyMap).
func (k CarouselKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Jump, k.Expand, k.Gallery},
		{k.Add, k.Edit, k.Delete},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// Form Keys
// =============================================================================

// FormKeyMap defines keys for the entry form.
type FormKeyMap struct {
	Submit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
}

// NewFormKeyMap creates form key bindings from config.
func NewFormKeyMap(cfg *config.KeysConfig) FormKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return FormKeyMap{
		Submit:    binding(parseKeys(cfg.Submit, "ctrl+s"), "save"),
		Cancel:    binding(parseKeys(cfg.Cancel, "esc"), "cancel"),
		NextField: binding(parseKeys(cfg.NextField, "tab"), "next field"),
		PrevField: binding(parseKeys(cfg.PrevField, "shift+tab"), "prev field"),
	}
}

// ShortHelp returns the short help for the form (implements help.KeyMap).
func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.NextField}
}

// FullHelp returns the full help for the form (implements help.KeyMap).
func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Cancel},
		{k.NextField, k.PrevField},
	}
}

// =============================================================================
// Gallery Keys
// =============================================================================

// GalleryKeyMap defines keys for the gallery grid.
type GalleryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultGalleryKeyMap returns the default gallery key bindings.
func DefaultGalleryKeyMap() GalleryKeyMap {
	return NewGalleryKeyMap(&config.KeysConfig{})
}

// NewGalleryKeyMap creates gallery key bindings from config.
func NewGalleryKeyMap(cfg *config.KeysConfig) GalleryKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GalleryKeyMap{
		Up:     binding([]string{"up", "k"}, "up"),
		Down:   binding([]string{"down", "j"}, "down"),
		Left:   binding(parseKeys(cfg.Prev, "left", "h"), "left"),
		Right:  binding(parseKeys(cfg.Next, "right", "l"), "right"),
		Select: binding([]string{"enter", " "}, "open"),
		Close:  binding(append(parseKeys(cfg.Cancel, "esc"), parseKeys(cfg.Gallery, "g")...), "close"),
	}
}

// ShortHelp returns the short help for the gallery (implements help.KeyMap).
func (k GalleryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.Close}
}

// FullHelp returns the full help for the gallery (implements help.KeyMap).
func (k GalleryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Close},
	}
}

// =============================================================================
// Confirm Keys
// =============================================================================

// ConfirmKeyMap defines keys for the delete confirmation dialog.
type ConfirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

// DefaultConfirmKeyMap returns the default confirmation key bindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y/enter", "delete"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// NewHelpKeyMap creates help overlay bindings. The configured help key and
// esc are advertised; q, enter and space close it too.
func NewHelpKeyMap(cfg *config.KeysConfig) HelpKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	shown := append(parseKeys(cfg.Help, "?"), "esc")
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys(append(shown, "q", "enter", " ")...),
			key.WithHelp(keyLabel(shown), "close"),
		),
	}
}
