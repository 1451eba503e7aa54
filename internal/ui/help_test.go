package ui

import (
	"testing"

	"devlog/internal/config"
)

func newTestHelpOverlay(cfg *config.KeysConfig) *HelpOverlay {
	return NewHelpOverlay(createTestStyles(), NewCarouselKeyMap(cfg), NewFormKeyMap(cfg), NewGalleryKeyMap(cfg), NewHelpKeyMap(cfg))
}

func TestHelpOverlay_ContentStructure(t *testing.T) {
	setupTest(t)

	help := newTestHelpOverlay(nil)
	help.SetSize(100, 40)

	output := help.View()

	// Verify help contains key sections
	sections := []string{
		"Browsing",
		"Entries",
		"Entry Form",
		"Gallery",
		"Global",
	}

	for _, section := range sections {
		if !contains(output, section) {
			t.Errorf("help overlay should contain section: %s", section)
		}
	}

	// Verify key bindings are mentioned
	keybindings := []string{
		"←/h",
		"enter/space",
		"tab",
		"ctrl+s",
		"esc",
		"q/ctrl+c",
		"Previous entry",
		"Press ?/esc to close",
	}

	for _, key := range keybindings {
		if !contains(output, key) {
			t.Errorf("help overlay should mention key: %s", key)
		}
	}
}

func TestHelpOverlay_ShowsRemappedKeys(t *testing.T) {
	setupTest(t)

	help := newTestHelpOverlay(&config.KeysConfig{Add: "+", Submit: "ctrl+w", Help: "f1"})
	help.SetSize(100, 40)
	output := help.View()

	for _, want := range []string{"+", "ctrl+w", "Press f1/esc to close"} {
		if !contains(output, want) {
			t.Errorf("help overlay should show remapped key %q", want)
		}
	}
	if contains(output, "ctrl+s") {
		t.Error("help overlay should not show the replaced submit key")
	}
}

func TestHelpOverlay_SmallTerminal(t *testing.T) {
	setupTest(t)

	help := newTestHelpOverlay(nil)
	help.SetSize(30, 20)

	if output := help.View(); !contains(output, "Keyboard") {
		t.Error("narrow help overlay should still render its title")
	}
}

func TestRenderHelp_Function(t *testing.T) {
	setupTest(t)

	styles := createTestStyles()
	output := styles.RenderHelp(
		"a", "add",
		"e", "edit",
		"x", "delete",
	)

	if len(output) == 0 {
		t.Error("RenderHelp should produce output")
	}
	if !contains(output, "[a]") {
		t.Error("output should contain key 'a'")
	}
	if !contains(output, "delete") {
		t.Error("output should contain description 'delete'")
	}
}
