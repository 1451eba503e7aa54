package ui

import (
	"strings"

	"devlog/internal/carousel"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const galleryCellWidth = 24

// Gallery is the grid overview of all entries. It tracks only a cursor;
// choosing a cell is reported back to the App.
type Gallery struct {
	styles *Styles
	keys   GalleryKeyMap
	cursor int
	count  int
	width  int
}

// NewGallery creates a gallery with the given key bindings.
func NewGallery(styles *Styles, keys GalleryKeyMap) *Gallery {
	return &Gallery{styles: styles, keys: keys}
}

// SetWidth sets the available width used to lay out columns.
func (g *Gallery) SetWidth(width int) {
	g.width = width
}

// Reset places the cursor on the selected entry.
func (g *Gallery) Reset(cursor, count int) {
	g.count = count
	g.cursor = 0
	if cursor >= 0 && cursor < count {
		g.cursor = cursor
	}
}

// Cursor returns the highlighted cell index.
func (g *Gallery) Cursor() int {
	return g.cursor
}

// Columns returns how many cells fit on one row.
func (g *Gallery) Columns() int {
	cell := galleryCellWidth + 4 // border and padding
	if g.width <= cell {
		return 1
	}
	return max(1, (g.width-2)/(cell+1))
}

// Update moves the cursor. It returns true when the message was a
// navigation key.
func (g *Gallery) Update(msg tea.KeyMsg) bool {
	if g.count == 0 {
		return false
	}
	cols := g.Columns()
	switch {
	case key.Matches(msg, g.keys.Left):
		g.cursor = (g.cursor - 1 + g.count) % g.count
	case key.Matches(msg, g.keys.Right):
		g.cursor = (g.cursor + 1) % g.count
	case key.Matches(msg, g.keys.Up):
		if g.cursor-cols >= 0 {
			g.cursor -= cols
		}
	case key.Matches(msg, g.keys.Down):
		if g.cursor+cols < g.count {
			g.cursor += cols
		}
	default:
		return false
	}
	return true
}

// View renders the items as a grid of small cards.
func (g *Gallery) View(items []carousel.GalleryItem) string {
	header := g.styles.FormTitleStyle.Render("All Entries")
	if len(items) == 0 {
		return header + "\n" + g.styles.EmptyStyle.Render("No entries yet.")
	}

	cols := g.Columns()
	var rows []string
	var row []string
	for i, item := range items {
		row = append(row, g.renderCell(item, i == g.cursor))
		if len(row) == cols || i == len(items)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(row)...))
			row = nil
		}
	}

	return header + "\n" + strings.Join(rows, "\n")
}

func (g *Gallery) renderCell(item carousel.GalleryItem, highlighted bool) string {
	style := g.styles.GalleryItemStyle
	if highlighted {
		style = g.styles.GalleryActiveStyle
	}

	marker := " "
	if item.Active {
		marker = "●"
	}

	title := runewidth.Truncate(item.Title, galleryCellWidth-3, "…")
	body := runewidth.FillRight(item.Mood+" "+title, galleryCellWidth) + "\n" +
		g.styles.CardDateStyle.Render(runewidth.FillRight(marker+" "+item.Date, galleryCellWidth))

	return style.Render(body)
}

func spaced(cells []string) []string {
	out := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}
