package ui

import (
	"devlog/internal/config"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Chrome
	TitleStyle lipgloss.Style
	DateStyle  lipgloss.Style

	// Card
	CardStyle         lipgloss.Style
	CardExpandedStyle lipgloss.Style
	CardTitleStyle    lipgloss.Style
	CardDateStyle     lipgloss.Style
	TagStyle          lipgloss.Style
	PreviewStyle      lipgloss.Style
	ContentStyle      lipgloss.Style
	HintStyle         lipgloss.Style
	EmptyStyle        lipgloss.Style

	// Navigation
	DotActive    string
	DotInactive  string
	ArrowStyle   lipgloss.Style
	CounterStyle lipgloss.Style

	// Gallery
	GalleryItemStyle   lipgloss.Style
	GalleryActiveStyle lipgloss.Style

	// Form
	FormStyle        lipgloss.Style
	FormTitleStyle   lipgloss.Style
	InputLabelStyle  lipgloss.Style
	InputActiveLabel lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
// If a theme color is empty, it uses the appropriate default.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorSecondary = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")
	s.ColorAccent = colorOrDefault(theme.Accent, "#3B82F6")

	s.ColorBg = colorOrDefault(theme.Background, "#1F2937")
	s.ColorBgLight = lipgloss.Color("#374151")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Card
	s.CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(1, 2)

	s.CardExpandedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(1, 2)

	s.CardTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	s.CardDateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.TagStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent)

	s.PreviewStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Italic(true)

	s.ContentStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.HintStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true)

	s.EmptyStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true)

	// Navigation
	s.DotActive = lipgloss.NewStyle().Foreground(s.ColorPrimary).Render("●")
	s.DotInactive = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("○")

	s.ArrowStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.CounterStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Gallery
	s.GalleryItemStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.GalleryActiveStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Background(s.ColorBgLight).
		Padding(0, 1)

	// Form
	s.FormStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(1, 2)

	s.FormTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	s.InputLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.InputActiveLabel = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += s.HelpKeyStyle.Render("["+keys[i]+"]") + " " + s.HelpStyle.Render(keys[i+1])
	}
	return result
}

// RenderBindings renders the help of each enabled binding as RenderHelp does.
func (s *Styles) RenderBindings(bindings ...key.Binding) string {
	pairs := make([]string, 0, 2*len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		pairs = append(pairs, h.Key, h.Desc)
	}
	return s.RenderHelp(pairs...)
}
