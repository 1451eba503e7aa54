package ui

import (
	"testing"

	"devlog/internal/carousel"
)

func galleryItems(n int) []carousel.GalleryItem {
	items := make([]carousel.GalleryItem, n)
	for i := range items {
		items[i] = carousel.GalleryItem{Index: i, Mood: "📝", Title: "Entry", Date: "2026-02-05"}
	}
	return items
}

func TestGallery_Columns(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, 1},
		{20, 1},
		{60, 2},
		{100, 3},
		{200, 6},
	}

	for _, tt := range tests {
		g := NewGallery(createTestStyles(), DefaultGalleryKeyMap())
		g.SetWidth(tt.width)
		if got := g.Columns(); got != tt.want {
			t.Errorf("Columns() at width %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestGallery_CursorMovement(t *testing.T) {
	g := NewGallery(createTestStyles(), DefaultGalleryKeyMap())
	g.SetWidth(100) // 3 columns
	g.Reset(0, 7)

	steps := []struct {
		key  string
		want int
	}{
		{"right", 1},
		{"down", 4},
		{"down", 4}, // 7 is out of range
		{"up", 1},
		{"up", 1},
		{"left", 0},
		{"left", 6}, // wraps
		{"right", 0},
	}

	for i, s := range steps {
		g.Update(keyMsg(s.key))
		if g.Cursor() != s.want {
			t.Fatalf("step %d (%s): Cursor() = %d, want %d", i, s.key, g.Cursor(), s.want)
		}
	}
}

func TestGallery_Reset(t *testing.T) {
	g := NewGallery(createTestStyles(), DefaultGalleryKeyMap())

	g.Reset(2, 3)
	if g.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", g.Cursor())
	}
	g.Reset(5, 3)
	if g.Cursor() != 0 {
		t.Errorf("out-of-range reset: Cursor() = %d, want 0", g.Cursor())
	}
	g.Reset(0, 0)
	if g.Update(keyMsg("right")) {
		t.Error("Update() on an empty gallery should not move")
	}
}

func TestGallery_ViewTruncatesTitles(t *testing.T) {
	setupTest(t)
	g := NewGallery(createTestStyles(), DefaultGalleryKeyMap())
	g.SetWidth(100)

	items := galleryItems(2)
	items[1].Title = "An extremely long entry title that cannot fit in a cell"
	items[1].Active = true
	g.Reset(1, 2)

	view := g.View(items)
	if contains(view, "cannot fit in a cell") {
		t.Error("long titles should be truncated")
	}
	if !contains(view, "…") {
		t.Error("truncated title should end with an ellipsis")
	}
	if !contains(view, "● 2026-02-05") {
		t.Error("selected entry should be marked")
	}
}

func TestGallery_ViewEmpty(t *testing.T) {
	setupTest(t)
	g := NewGallery(createTestStyles(), DefaultGalleryKeyMap())

	if view := g.View(nil); !contains(view, "No entries yet.") {
		t.Errorf("View(nil) = %q", view)
	}
}
