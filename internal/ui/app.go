// Package ui provides the terminal user interface for devlog.
// This file contains the main App model which translates key and mouse
// events into carousel operations and draws the resulting Frame.
package ui

import (
	"fmt"
	"strings"
	"time"

	"devlog/internal/carousel"
	"devlog/internal/config"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// cardTop is the screen row where the card starts: title bar, then a blank
// line.
const cardTop = 2

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys             *config.KeysConfig
	ConfirmDeletions bool
	ShowHelpBar      bool
	Logger           *zap.SugaredLogger
}

// App is the main application model. The carousel.Controller owns all
// journal state; App only keeps widget and overlay state.
type App struct {
	ctrl        *carousel.Controller
	styles      *Styles
	config      *AppConfig
	log         *zap.SugaredLogger
	form        *EntryForm
	gallery     *Gallery
	helpOverlay *HelpOverlay
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	// Key bindings
	keys        CarouselKeyMap
	formKeys    FormKeyMap
	galleryKeys GalleryKeyMap
	confirmKeys ConfirmKeyMap
	helpKeys    HelpKeyMap
}

// NewApp creates a new application around a loaded controller.
func NewApp(ctrl *carousel.Controller, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:             &config.KeysConfig{},
			ConfirmDeletions: true,
			ShowHelpBar:      true,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	carouselKeys := NewCarouselKeyMap(cfg.Keys)
	formKeys := NewFormKeyMap(cfg.Keys)
	galleryKeys := NewGalleryKeyMap(cfg.Keys)
	helpKeys := NewHelpKeyMap(cfg.Keys)

	return &App{
		ctrl:        ctrl,
		styles:      styles,
		config:      cfg,
		log:         log,
		form:        NewEntryForm(styles, cfg.Keys),
		gallery:     NewGallery(styles, galleryKeys),
		helpOverlay: NewHelpOverlay(styles, carouselKeys, formKeys, galleryKeys, helpKeys),
		keys:        carouselKeys,
		formKeys:    formKeys,
		galleryKeys: galleryKeys,
		confirmKeys: DefaultConfirmKeyMap(),
		helpKeys:    helpKeys,
	}
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the status-expiry ticker. Entries are already loaded by the
// controller.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)
	}

	// Cursor blink and other widget messages go to the open form.
	if a.ctrl.State() == carousel.Editing {
		return a, a.form.Update(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay takes priority
	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	if a.ctrl.ConfirmingDelete() {
		switch {
		case key.Matches(msg, a.confirmKeys.Yes):
			a.confirmDelete()
		case key.Matches(msg, a.confirmKeys.No):
			_ = a.ctrl.ConfirmDelete(false)
			a.SetStatus("Canceled", false)
		}
		return a, nil
	}

	switch a.ctrl.State() {
	case carousel.Editing:
		return a.handleFormKey(msg)
	case carousel.GalleryOpen:
		return a.handleGalleryKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true

	case key.Matches(msg, a.keys.Prev):
		a.ctrl.Prev()

	case key.Matches(msg, a.keys.Next):
		a.ctrl.Next()

	case key.Matches(msg, a.keys.Jump):
		a.ctrl.JumpTo(int(msg.String()[0] - '1'))

	case key.Matches(msg, a.keys.Expand):
		a.ctrl.ToggleExpand()

	case key.Matches(msg, a.keys.Add):
		a.ctrl.BeginCreate()
		return a, a.openForm()

	case key.Matches(msg, a.keys.Edit):
		if !a.ctrl.BeginEdit() {
			a.SetStatus("No entry selected", true)
			return a, nil
		}
		return a, a.openForm()

	case key.Matches(msg, a.keys.Delete):
		if !a.ctrl.RequestDelete() {
			a.SetStatus("No entry selected", true)
			return a, nil
		}
		if !a.config.ConfirmDeletions {
			a.confirmDelete()
		}

	case key.Matches(msg, a.keys.Gallery):
		a.ctrl.OpenGallery()
		a.gallery.Reset(a.ctrl.Index(), a.ctrl.Len())
	}

	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.formKeys.Submit):
		creating := !a.isEditingExisting()
		if err := a.ctrl.Submit(a.form.Draft()); err != nil {
			a.reportErr("Save entry", err)
			return a, nil
		}
		if creating {
			a.SetStatus("Entry added", false)
		} else {
			a.SetStatus("Entry updated", false)
		}
		return a, nil

	case key.Matches(msg, a.formKeys.Cancel):
		a.ctrl.Cancel()
		return a, nil
	}

	return a, a.form.Update(msg)
}

func (a *App) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.galleryKeys.Select):
		a.ctrl.SelectFromGallery(a.gallery.Cursor())
	case key.Matches(msg, a.galleryKeys.Close):
		a.ctrl.CloseGallery()
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit
	default:
		a.gallery.Update(msg)
	}
	return a, nil
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Any click closes help
	if a.showHelp {
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return a, nil
	}

	if a.ctrl.ConfirmingDelete() {
		if msg.Action == tea.MouseActionPress {
			_ = a.ctrl.ConfirmDelete(false)
			a.SetStatus("Canceled", false)
		}
		return a, nil
	}

	state := a.ctrl.State()
	if state != carousel.Viewing && state != carousel.Expanded {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.ctrl.Prev()
		return a, nil
	case tea.MouseButtonWheelDown:
		a.ctrl.Next()
		return a, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}

	frame := a.ctrl.Frame()
	card := a.renderCard(frame)
	cardW, cardH := lipgloss.Width(card), lipgloss.Height(card)
	cardLeft := centerOffset(a.width, cardW)

	if msg.Y >= cardTop && msg.Y < cardTop+cardH && msg.X >= cardLeft && msg.X < cardLeft+cardW {
		a.ctrl.ToggleExpand()
		return a, nil
	}

	// The navigation row sits one blank line below the card.
	if msg.Y == cardTop+cardH+1 {
		nav := a.renderNav(frame)
		a.clickNav(msg.X-centerOffset(a.width, lipgloss.Width(nav)), len(frame.Dots))
	}

	a.ctrl.Collapse()
	return a, nil
}

// clickNav maps an x offset within the navigation row to prev, next or a
// dot.
func (a *App) clickNav(x, dots int) {
	if dots == 0 || x < 0 {
		return
	}
	width := navWidth(dots)
	switch {
	case x < 2:
		a.ctrl.Prev()
	case x >= width-2:
		a.ctrl.Next()
	case x >= 3 && (x-3)%2 == 0 && (x-3)/2 < dots:
		a.ctrl.JumpTo((x - 3) / 2)
	}
}

func (a *App) isEditingExisting() bool {
	_, ok := a.ctrl.EditingID()
	return ok
}

func (a *App) openForm() tea.Cmd {
	frame := a.ctrl.Frame()
	if frame.Form == nil {
		return nil
	}
	return a.form.Open(*frame.Form)
}

func (a *App) confirmDelete() {
	if err := a.ctrl.ConfirmDelete(true); err != nil {
		a.reportErr("Delete entry", err)
		return
	}
	a.SetStatus("Entry deleted", false)
}

// reportErr makes a storage failure visible in the status bar and logs it.
func (a *App) reportErr(action string, err error) {
	a.log.Errorw(strings.ToLower(action)+" failed", "error", err)
	a.SetStatus(action+": "+err.Error(), true)
}

// updateLayout resizes widgets to the terminal.
func (a *App) updateLayout() {
	a.helpOverlay.SetSize(a.width, a.height)
	a.form.SetWidth(min(72, max(30, a.width-4)))
	a.gallery.SetWidth(a.width)
}

func (a *App) cardWidth() int {
	if a.width <= 0 {
		return 64
	}
	return min(64, max(30, a.width-4))
}

// View renders the current frame.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	// Show help overlay if active
	if a.showHelp {
		return a.helpOverlay.View()
	}

	frame := a.ctrl.Frame()

	if frame.ConfirmingDelete {
		return a.renderConfirmDelete(frame)
	}

	if frame.Form != nil {
		return a.renderOverlay(a.form.View(), a.renderHelpBar(frame))
	}

	var b strings.Builder

	// Title bar
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n\n")

	if frame.State == carousel.GalleryOpen {
		b.WriteString(a.gallery.View(frame.Gallery))
		b.WriteString("\n\n")
		b.WriteString(a.renderHelpBar(frame))
		return b.String()
	}

	b.WriteString(a.center(a.renderCard(frame)))
	b.WriteString("\n\n")
	b.WriteString(a.center(a.renderNav(frame)))
	b.WriteString("\n")
	b.WriteString(a.center(a.styles.CounterStyle.Render(frame.Counter.Current + " / " + frame.Counter.Total)))
	b.WriteString("\n\n")

	// Help bar
	b.WriteString(a.renderHelpBar(frame))

	return b.String()
}

func (a *App) center(s string) string {
	if a.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
}

// centerOffset returns the left column of a block of width w centered in
// total, matching lipgloss.PlaceHorizontal.
func centerOffset(total, w int) int {
	if total <= w {
		return 0
	}
	return (total - w + 1) / 2
}

func (a *App) renderCard(frame carousel.Frame) string {
	width := a.cardWidth()
	inner := width - 6 // border and padding

	if frame.Empty || frame.Card == nil {
		body := a.styles.EmptyStyle.Render("No entries yet. Press a to write your first log.")
		return a.styles.CardStyle.Width(width).Render(body)
	}

	card := frame.Card
	var b strings.Builder
	b.WriteString(card.Mood + "  " + a.styles.CardDateStyle.Render(card.Date))
	b.WriteString("\n")
	b.WriteString(a.styles.CardTitleStyle.Render(card.Title))
	if len(card.Tags) > 0 {
		tags := make([]string, len(card.Tags))
		for i, t := range card.Tags {
			tags[i] = a.styles.TagStyle.Render("#" + t)
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(tags, " "))
	}
	b.WriteString("\n\n")

	style := a.styles.CardStyle
	if card.Expanded {
		style = a.styles.CardExpandedStyle
		b.WriteString(a.styles.ContentStyle.Width(inner).Render(card.Content))
		b.WriteString("\n\n")
		b.WriteString(a.styles.HintStyle.Render("enter to collapse"))
	} else {
		b.WriteString(a.styles.PreviewStyle.Width(inner).Render(card.Preview))
		b.WriteString("\n\n")
		b.WriteString(a.styles.HintStyle.Render("enter to read more"))
	}

	return style.Width(width).Render(b.String())
}

// navWidth is the printed width of the navigation row for n dots:
// "‹  " + dots separated by spaces + "  ›".
func navWidth(n int) int {
	return 3 + max(0, 2*n-1) + 3
}

func (a *App) renderNav(frame carousel.Frame) string {
	if len(frame.Dots) == 0 {
		return ""
	}
	dots := make([]string, len(frame.Dots))
	for i, active := range frame.Dots {
		if active {
			dots[i] = a.styles.DotActive
		} else {
			dots[i] = a.styles.DotInactive
		}
	}
	return a.styles.ArrowStyle.Render("‹") + "  " +
		strings.Join(dots, " ") +
		"  " + a.styles.ArrowStyle.Render("›")
}

func (a *App) renderOverlay(content, footer string) string {
	body := content
	if footer != "" {
		body += "\n" + footer
	}
	if a.width <= 0 || a.height <= 0 {
		return body
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
}

func (a *App) renderConfirmDelete(frame carousel.Frame) string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	title := ""
	if frame.Card != nil {
		title = truncateText(frame.Card.Mood+" "+frame.Card.Title, 60)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete this entry?"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	return a.renderOverlay(overlayStyle.Render(b.String()), "")
}

// renderGoodbye shows a short exit message.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	if n := a.ctrl.Len(); n > 0 {
		b.WriteString(fmt.Sprintf("  %d entries in your journal.\n", n))
	}
	b.WriteString("\n")
	return b.String()
}

// renderTitleBar creates the top title bar with the current date.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" devlog ")
	date := a.styles.DateStyle.Render(time.Now().Format("Mon Jan 2 · 15:04"))

	spacerWidth := a.width - lipgloss.Width(title) - lipgloss.Width(date)
	if spacerWidth < 2 {
		spacerWidth = 2
	}
	return title + strings.Repeat(" ", spacerWidth) + date
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar(frame carousel.Frame) string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if !a.config.ShowHelpBar {
		return ""
	}

	switch frame.State {
	case carousel.Editing:
		return a.styles.RenderBindings(a.formKeys.ShortHelp()...)
	case carousel.GalleryOpen:
		return a.styles.RenderBindings(a.galleryKeys.ShortHelp()...)
	}

	if frame.Empty {
		return a.styles.RenderBindings(a.keys.Add, a.keys.Help, a.keys.Quit)
	}

	keys := a.keys
	if frame.State == carousel.Expanded {
		keys.Expand.SetHelp(keys.Expand.Help().Key, "collapse")
	}
	return a.styles.RenderBindings(keys.ShortHelp()...)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// truncateText shortens s to at most n runes, marking the cut with "…".
func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// Run starts the Bubble Tea program around the given controller.
func Run(ctrl *carousel.Controller, styles *Styles, cfg *AppConfig) error {
	app := NewApp(ctrl, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}
