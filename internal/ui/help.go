package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpSection is one titled group of bindings in the overlay.
type helpSection struct {
	title    string
	bindings []key.Binding
}

// helpDescriptions expands the short help-bar descriptions.
var helpDescriptions = map[string]string{
	"prev":       "Previous entry",
	"next":       "Next entry",
	"jump":       "Jump to entry",
	"expand":     "Expand/collapse card",
	"add":        "New entry",
	"edit":       "Edit entry",
	"delete":     "Delete entry",
	"gallery":    "Gallery of all entries",
	"save":       "Save",
	"cancel":     "Cancel",
	"next field": "Next field",
	"prev field": "Previous field",
	"up":         "Move up",
	"down":       "Move down",
	"left":       "Move left",
	"right":      "Move right",
	"open":       "Open entry",
	"close":      "Close gallery",
	"help":       "Toggle help",
	"quit":       "Quit",
}

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width    int
	height   int
	styles   *Styles
	sections []helpSection
	close    key.Binding
}

// NewHelpOverlay creates a help overlay listing the given key maps.
func NewHelpOverlay(styles *Styles, keys CarouselKeyMap, form FormKeyMap, gallery GalleryKeyMap, help HelpKeyMap) *HelpOverlay {
	browse := keys.FullHelp()
	formGroups := form.FullHelp()
	galleryGroups := gallery.FullHelp()
	return &HelpOverlay{
		styles: styles,
		sections: []helpSection{
			{"Browsing", browse[0]},
			{"Entries", browse[1]},
			{"Entry Form", append(formGroups[0], formGroups[1]...)},
			{"Gallery", append(galleryGroups[0], galleryGroups[1]...)},
			{"Global", browse[2]},
		},
		close: help.Close,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	// Styles for help overlay
	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("📖 devlog - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, section := range h.sections {
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			help := binding.Help()
			desc, ok := helpDescriptions[help.Desc]
			if !ok {
				desc = help.Desc
			}
			b.WriteString(keyStyle.Render(help.Key) + descStyle.Render(desc) + "\n")
		}
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press " + h.close.Help().Key + " to close"))

	content := overlayStyle.Render(b.String())

	// Center the overlay
	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
