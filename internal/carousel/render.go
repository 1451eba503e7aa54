package carousel

import (
	"fmt"

	"devlog/internal/journal"
)

// Form headings.
const (
	HeadingNew  = "New Log Entry"
	HeadingEdit = "Edit Log Entry"
)

// Card is the full detail of the selected entry.
type Card struct {
	ID       int64
	Mood     string
	Date     string
	Title    string
	Tags     []string
	Preview  string
	Content  string
	Expanded bool
}

// Counter is the "current of total" indicator, zero-padded to two digits.
type Counter struct {
	Current string
	Total   string
}

// GalleryItem is one cell of the overview grid.
type GalleryItem struct {
	Index  int
	Mood   string
	Title  string
	Date   string
	Active bool
}

// FormState describes an open entry form.
type FormState struct {
	Editing bool // false when creating
	Draft   journal.Draft
}

// Heading returns the form title.
func (f FormState) Heading() string {
	if f.Editing {
		return HeadingEdit
	}
	return HeadingNew
}

// UIState is the non-list input to Render.
type UIState struct {
	State            State
	ConfirmingDelete bool
	Form             *FormState
}

// Frame describes everything the surface should display. It carries no
// styling.
type Frame struct {
	State            State
	Empty            bool
	Card             *Card // nil when Empty
	Dots             []bool
	Counter          Counter
	Gallery          []GalleryItem // set only while the gallery is open
	Form             *FormState
	ConfirmingDelete bool
}

// Render maps the entry list, selection and UI state to a Frame. It has no
// side effects.
func Render(entries []journal.Entry, index int, ui UIState) Frame {
	f := Frame{
		State:            ui.State,
		Empty:            len(entries) == 0,
		Dots:             make([]bool, len(entries)),
		Form:             ui.Form,
		ConfirmingDelete: ui.ConfirmingDelete,
	}

	if !f.Empty {
		index = clamp(index, len(entries))
		e := entries[index]
		f.Card = &Card{
			ID:       e.ID,
			Mood:     e.Mood,
			Date:     e.Date,
			Title:    e.Title,
			Tags:     append([]string(nil), e.Tags...),
			Preview:  e.Preview,
			Content:  e.Content,
			Expanded: ui.State == Expanded,
		}
		f.Dots[index] = true
		f.Counter = Counter{Current: pad2(index + 1), Total: pad2(len(entries))}
	} else {
		f.Counter = Counter{Current: pad2(0), Total: pad2(0)}
	}

	if ui.State == GalleryOpen {
		f.Gallery = make([]GalleryItem, len(entries))
		for i, e := range entries {
			f.Gallery[i] = GalleryItem{
				Index:  i,
				Mood:   e.Mood,
				Title:  e.Title,
				Date:   e.Date,
				Active: i == index,
			}
		}
	}

	return f
}

func pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
