// Package carousel implements the single-card journal browser: the current
// selection, the edit target and the view state machine. It mutates the
// journal.Store and leaves drawing to Render and the ui package.
package carousel

import (
	"devlog/internal/journal"
)

// State is the view mode of the carousel.
type State int

const (
	// Viewing shows the current card collapsed.
	Viewing State = iota
	// Expanded shows the current card with its full content.
	Expanded
	// Editing shows the entry form; navigation is disabled.
	Editing
	// GalleryOpen shows the grid of all entries.
	GalleryOpen
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Expanded:
		return "expanded"
	case Editing:
		return "editing"
	case GalleryOpen:
		return "gallery"
	default:
		return "unknown"
	}
}

// Controller owns the selection and UI state for one session. It is not safe
// for concurrent use; the Bubble Tea loop is its only caller.
type Controller struct {
	store *journal.Store
	index int
	state State

	// Edit target: hasEdit is false while the form creates a new entry.
	editingID int64
	hasEdit   bool
	form      journal.Draft

	confirming bool
}

// New starts in Viewing at index 0 over an already loaded store.
func New(store *journal.Store) *Controller {
	return &Controller{store: store, state: Viewing}
}

// Index returns the selected position. It is 0 for an empty list.
func (c *Controller) Index() int { return c.index }

// State returns the current view state.
func (c *Controller) State() State { return c.state }

// Len returns the number of entries.
func (c *Controller) Len() int { return c.store.Len() }

// Entries returns a copy of the entry list.
func (c *Controller) Entries() []journal.Entry { return c.store.Entries() }

// Current returns the selected entry, or false when the list is empty.
func (c *Controller) Current() (journal.Entry, bool) {
	return c.store.At(c.index)
}

// EditingID returns the id loaded into the form, if any.
func (c *Controller) EditingID() (int64, bool) {
	return c.editingID, c.hasEdit
}

// ConfirmingDelete reports whether the delete prompt is open.
func (c *Controller) ConfirmingDelete() bool { return c.confirming }

// FormDraft returns the values the form was opened with.
func (c *Controller) FormDraft() journal.Draft { return c.form }

// =============================================================================
// Navigation
// =============================================================================

// Next moves to the following entry, wrapping to the first.
func (c *Controller) Next() { c.step(1) }

// Prev moves to the preceding entry, wrapping to the last.
func (c *Controller) Prev() { c.step(-1) }

func (c *Controller) step(delta int) {
	n := c.store.Len()
	if n == 0 || c.state == Editing || c.confirming {
		return
	}
	c.index = ((c.index+delta)%n + n) % n
	c.collapse()
}

// JumpTo selects the entry at i. Out-of-range positions are ignored.
func (c *Controller) JumpTo(i int) {
	if c.state == Editing || c.confirming || i < 0 || i >= c.store.Len() {
		return
	}
	c.index = i
	c.collapse()
}

// =============================================================================
// Expand / collapse
// =============================================================================

// ToggleExpand switches the current card between Viewing and Expanded.
func (c *Controller) ToggleExpand() {
	if c.store.Len() == 0 || c.confirming {
		return
	}
	switch c.state {
	case Viewing:
		c.state = Expanded
	case Expanded:
		c.state = Viewing
	}
}

// Collapse handles a pointer interaction outside the card.
func (c *Controller) Collapse() {
	c.collapse()
}

func (c *Controller) collapse() {
	if c.state == Expanded {
		c.state = Viewing
	}
}

// =============================================================================
// Editing
// =============================================================================

// BeginEdit opens the form pre-filled with the current entry.
func (c *Controller) BeginEdit() bool {
	e, ok := c.Current()
	if !ok || c.confirming {
		return false
	}
	c.editingID, c.hasEdit = e.ID, true
	c.form = journal.DraftFrom(e)
	c.state = Editing
	return true
}

// BeginCreate opens a blank form.
func (c *Controller) BeginCreate() {
	if c.confirming {
		return
	}
	c.clearEdit()
	c.state = Editing
}

// Submit saves the form. In edit mode the target entry is updated in place
// (silently skipped if it no longer exists); otherwise a new entry is created
// and selected. The form closes either way. A persist error is returned after
// the in-memory change has been applied.
func (c *Controller) Submit(d journal.Draft) error {
	if c.state != Editing {
		return nil
	}

	var err error
	if c.hasEdit {
		_, _, err = c.store.Update(c.editingID, d)
	} else {
		_, err = c.store.Create(d)
		c.index = 0
	}

	c.clearEdit()
	c.state = Viewing
	return err
}

// Cancel closes the form without saving.
func (c *Controller) Cancel() {
	if c.state != Editing {
		return
	}
	c.clearEdit()
	c.state = Viewing
}

func (c *Controller) clearEdit() {
	c.editingID, c.hasEdit = 0, false
	c.form = journal.Draft{}
}

// =============================================================================
// Gallery
// =============================================================================

// OpenGallery shows the grid of all entries. An open form or delete prompt
// is dropped.
func (c *Controller) OpenGallery() {
	c.confirming = false
	c.clearEdit()
	c.state = GalleryOpen
}

// SelectFromGallery selects entry i and closes the gallery.
func (c *Controller) SelectFromGallery(i int) {
	if c.state != GalleryOpen {
		return
	}
	if i >= 0 && i < c.store.Len() {
		c.index = i
	}
	c.state = Viewing
}

// CloseGallery returns to Viewing without changing the selection.
func (c *Controller) CloseGallery() {
	if c.state == GalleryOpen {
		c.state = Viewing
	}
}

// =============================================================================
// Deletion
// =============================================================================

// RequestDelete opens the yes/no prompt for the current entry.
func (c *Controller) RequestDelete() bool {
	if c.store.Len() == 0 || (c.state != Viewing && c.state != Expanded) {
		return false
	}
	c.confirming = true
	return true
}

// ConfirmDelete answers the prompt. On yes the current entry is removed and
// the selection is clamped to the last valid index; a selection in the middle
// stays numerically unchanged and so lands on the following entry.
func (c *Controller) ConfirmDelete(yes bool) error {
	if !c.confirming {
		return nil
	}
	c.confirming = false
	if !yes {
		return nil
	}

	err := c.store.Delete(c.index)
	if n := c.store.Len(); c.index >= n {
		c.index = max(n-1, 0)
	}
	c.state = Viewing
	return err
}

// =============================================================================
// Rendering
// =============================================================================

// Frame renders the current state.
func (c *Controller) Frame() Frame {
	var form *FormState
	if c.state == Editing {
		form = &FormState{Editing: c.hasEdit, Draft: c.form}
	}
	return Render(c.store.Entries(), c.index, UIState{
		State:            c.state,
		ConfirmingDelete: c.confirming,
		Form:             form,
	})
}
