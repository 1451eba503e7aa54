package ui

import (
	"strings"

	"devlog/internal/carousel"
	"devlog/internal/config"
	"devlog/internal/journal"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Form field order.
const (
	fieldTitle = iota
	fieldTags
	fieldMood
	fieldContent
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Tags", "Mood", "Content"}

// EntryForm is the add/edit overlay. It only collects a journal.Draft;
// saving is left to the caller.
type EntryForm struct {
	styles  *Styles
	keys    FormKeyMap
	heading string
	focus   int
	width   int

	title   textinput.Model
	tags    textinput.Model
	mood    textinput.Model
	content textarea.Model

	// opened is the draft passed to Open; loaded is what the inputs held
	// right after loading it. Inputs sanitize newlines and tabs, so a field
	// still equal to its loaded value returns the opened text unchanged.
	opened journal.Draft
	loaded journal.Draft
}

// NewEntryForm creates an empty form with config-aware key bindings.
func NewEntryForm(styles *Styles, cfg *config.KeysConfig) *EntryForm {
	title := textinput.New()
	title.Placeholder = "What did you work on?"
	title.CharLimit = 0

	tags := textinput.New()
	tags.Placeholder = "go, tui, testing"
	tags.CharLimit = 0

	mood := textinput.New()
	mood.Placeholder = journal.DefaultMood
	mood.CharLimit = 0
	mood.Width = 8

	content := textarea.New()
	content.Placeholder = "Start writing..."
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.MaxHeight = 0
	content.SetHeight(8)

	f := &EntryForm{
		styles:  styles,
		keys:    NewFormKeyMap(cfg),
		title:   title,
		tags:    tags,
		mood:    mood,
		content: content,
	}
	f.SetWidth(60)
	return f
}

// SetWidth sizes the inputs to fit an overlay of the given width.
func (f *EntryForm) SetWidth(width int) {
	f.width = width
	inner := max(10, width-8)
	f.title.Width = inner
	f.tags.Width = inner
	f.content.SetWidth(inner)
}

// Open loads a form state into the inputs and focuses the title.
func (f *EntryForm) Open(state carousel.FormState) tea.Cmd {
	f.heading = state.Heading()
	f.title.SetValue(state.Draft.Title)
	f.tags.SetValue(state.Draft.Tags)
	f.mood.SetValue(state.Draft.Mood)
	f.content.SetValue(state.Draft.Content)
	f.opened = state.Draft
	f.loaded = f.values()
	return f.setFocus(fieldTitle)
}

// Draft returns the current input values as typed. Fields left untouched
// since Open keep the exact text they were opened with.
func (f *EntryForm) Draft() journal.Draft {
	d := f.values()
	if d.Title == f.loaded.Title {
		d.Title = f.opened.Title
	}
	if d.Tags == f.loaded.Tags {
		d.Tags = f.opened.Tags
	}
	if d.Mood == f.loaded.Mood {
		d.Mood = f.opened.Mood
	}
	if d.Content == f.loaded.Content {
		d.Content = f.opened.Content
	}
	return d
}

func (f *EntryForm) values() journal.Draft {
	return journal.Draft{
		Title:   f.title.Value(),
		Tags:    f.tags.Value(),
		Mood:    f.mood.Value(),
		Content: f.content.Value(),
	}
}

// Heading returns the form title shown at the top of the overlay.
func (f *EntryForm) Heading() string {
	return f.heading
}

// Focused returns the index of the focused field.
func (f *EntryForm) Focused() int {
	return f.focus
}

func (f *EntryForm) setFocus(field int) tea.Cmd {
	f.focus = (field + fieldCount) % fieldCount
	f.title.Blur()
	f.tags.Blur()
	f.mood.Blur()
	f.content.Blur()

	switch f.focus {
	case fieldTitle:
		return f.title.Focus()
	case fieldTags:
		return f.tags.Focus()
	case fieldMood:
		return f.mood.Focus()
	default:
		return f.content.Focus()
	}
}

// Update moves focus between fields and forwards everything else to the
// focused input. Submit and cancel are handled by the App.
func (f *EntryForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keys.NextField):
			return f.setFocus(f.focus + 1)
		case key.Matches(msg, f.keys.PrevField):
			return f.setFocus(f.focus - 1)
		case msg.Type == tea.KeyEnter && f.focus != fieldContent:
			// Enter in a single-line field advances; the content area
			// keeps it as a newline.
			return f.setFocus(f.focus + 1)
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	case fieldMood:
		f.mood, cmd = f.mood.Update(msg)
	default:
		f.content, cmd = f.content.Update(msg)
	}
	return cmd
}

// View renders the form overlay body.
func (f *EntryForm) View() string {
	var b strings.Builder
	b.WriteString(f.styles.FormTitleStyle.Render(f.heading))
	b.WriteString("\n")

	views := [fieldCount]string{f.title.View(), f.tags.View(), f.mood.View(), f.content.View()}
	for i, v := range views {
		label := f.styles.InputLabelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = f.styles.InputActiveLabel.Render(fieldLabels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(v)
		if i < fieldCount-1 {
			b.WriteString("\n\n")
		}
	}

	return f.styles.FormStyle.Width(f.width).Render(b.String())
}
