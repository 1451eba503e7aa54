package ui

import (
	"testing"

	"devlog/internal/carousel"
	"devlog/internal/config"
	"devlog/internal/journal"
)

func TestEntryForm_OpenLoadsDraft(t *testing.T) {
	setupTest(t)
	form := NewEntryForm(createTestStyles(), &config.KeysConfig{})

	form.Open(carousel.FormState{
		Editing: true,
		Draft: journal.Draft{
			Title:   "Git Branching Strategy",
			Tags:    "Git, Workflow",
			Mood:    "🌿",
			Content: "Feature branches",
		},
	})

	if form.Heading() != carousel.HeadingEdit {
		t.Errorf("Heading() = %q, want %q", form.Heading(), carousel.HeadingEdit)
	}
	got := form.Draft()
	if got.Title != "Git Branching Strategy" || got.Tags != "Git, Workflow" || got.Mood != "🌿" || got.Content != "Feature branches" {
		t.Errorf("Draft() = %+v", got)
	}
	if form.Focused() != fieldTitle {
		t.Errorf("Focused() = %d, want title", form.Focused())
	}
}

func TestEntryForm_OpenResetsPreviousValues(t *testing.T) {
	setupTest(t)
	form := NewEntryForm(createTestStyles(), nil)

	form.Open(carousel.FormState{Editing: true, Draft: journal.Draft{Title: "old", Content: "old"}})
	form.Open(carousel.FormState{})

	if got := form.Draft(); got != (journal.Draft{}) {
		t.Errorf("Draft() = %+v, want empty", got)
	}
	if form.Heading() != carousel.HeadingNew {
		t.Errorf("Heading() = %q, want %q", form.Heading(), carousel.HeadingNew)
	}
}

func TestEntryForm_FocusWraps(t *testing.T) {
	setupTest(t)
	form := NewEntryForm(createTestStyles(), nil)
	form.Open(carousel.FormState{})

	form.Update(keyMsg("shift+tab"))
	if form.Focused() != fieldContent {
		t.Errorf("Focused() = %d, want content after wrapping back", form.Focused())
	}
	form.Update(keyMsg("tab"))
	if form.Focused() != fieldTitle {
		t.Errorf("Focused() = %d, want title after wrapping forward", form.Focused())
	}
}

func TestEntryForm_TypingGoesToFocusedField(t *testing.T) {
	setupTest(t)
	form := NewEntryForm(createTestStyles(), nil)
	form.Open(carousel.FormState{})

	form.Update(keyMsg("hi"))
	form.Update(keyMsg("tab"))
	form.Update(keyMsg("go"))

	got := form.Draft()
	if got.Title != "hi" || got.Tags != "go" {
		t.Errorf("Draft() = %+v, want title %q and tags %q", got, "hi", "go")
	}
}

func TestEntryForm_EnterInContentIsNewline(t *testing.T) {
	setupTest(t)
	form := NewEntryForm(createTestStyles(), nil)
	form.Open(carousel.FormState{})

	form.Update(keyMsg("shift+tab"))
	form.Update(keyMsg("a"))
	form.Update(keyMsg("enter"))
	form.Update(keyMsg("b"))

	if form.Focused() != fieldContent {
		t.Fatalf("Focused() = %d, want content", form.Focused())
	}
	if got := form.Draft().Content; got != "a\nb" {
		t.Errorf("Content = %q, want %q", got, "a\nb")
	}
}

func TestEntryForm_View(t *testing.T) {
	setupTest(t)
	form := NewEntryForm(createTestStyles(), nil)
	form.Open(carousel.FormState{})

	view := form.View()
	for _, want := range []string{carousel.HeadingNew, "Title", "Tags", "Mood", "Content"} {
		if !contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestEntryForm_UntouchedFieldsKeepOpenedText(t *testing.T) {
	setupTest(t)
	form := NewEntryForm(createTestStyles(), nil)

	opened := journal.Draft{
		Title:   "two\nlines",
		Tags:    "a",
		Content: "col1\tcol2",
	}
	form.Open(carousel.FormState{Editing: true, Draft: opened})

	if got := form.Draft(); got != opened {
		t.Errorf("Draft() = %+v, want %+v", got, opened)
	}

	form.Update(keyMsg("tab"))
	form.Update(keyMsg("b"))
	got := form.Draft()
	if got.Tags != "ab" {
		t.Errorf("Tags = %q, want edited value %q", got.Tags, "ab")
	}
	if got.Title != opened.Title || got.Content != opened.Content {
		t.Errorf("untouched fields changed: %+v", got)
	}
}
