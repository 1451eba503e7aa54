// Package export renders the journal for use outside the TUI: Markdown and
// JSON documents for `devlog export`, and styled terminal output of a single
// entry for `devlog show`.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"devlog/internal/journal"

	"github.com/charmbracelet/glamour"
)

// Format is an export output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts "markdown", "md" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q: use markdown or json", s)
	}
}

// Document is the JSON export envelope.
type Document struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Count       int             `json:"count"`
	Entries     []journal.Entry `json:"entries"`
}

// Render formats entries in the given format. Entries keep their list order,
// newest first.
func Render(entries []journal.Entry, format Format, now time.Time) ([]byte, error) {
	switch format {
	case FormatJSON:
		return FormatDocumentJSON(entries, now)
	case FormatMarkdown:
		return []byte(FormatMarkdownDocument(entries, now)), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// FormatDocumentJSON formats entries as an indented JSON document.
func FormatDocumentJSON(entries []journal.Entry, now time.Time) ([]byte, error) {
	if entries == nil {
		entries = []journal.Entry{}
	}
	data, err := json.MarshalIndent(Document{
		GeneratedAt: now,
		Count:       len(entries),
		Entries:     entries,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("format json: %w", err)
	}
	return append(data, '\n'), nil
}

// FormatMarkdownDocument formats all entries as one Markdown document.
func FormatMarkdownDocument(entries []journal.Entry, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Dev Journal\n\n")
	fmt.Fprintf(&b, "_%s, exported %s_\n", pluralEntries(len(entries)), now.Format("2006-01-02 15:04"))

	for _, e := range entries {
		b.WriteString("\n---\n\n")
		b.WriteString(entryBody(e, "##"))
	}
	return b.String()
}

// EntryMarkdown formats a single entry as a Markdown section.
func EntryMarkdown(e journal.Entry) string {
	return entryBody(e, "#")
}

func entryBody(e journal.Entry, heading string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n\n", heading, e.Mood, e.Title)

	meta := "*" + e.Date + "*"
	if len(e.Tags) > 0 {
		tags := make([]string, len(e.Tags))
		for i, t := range e.Tags {
			tags[i] = "`" + t + "`"
		}
		meta += " · " + strings.Join(tags, " ")
	}
	b.WriteString(meta)
	b.WriteString("\n")

	if content := strings.TrimSpace(e.Content); content != "" {
		b.WriteString("\n")
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String()
}

func pluralEntries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

// RenderOptions controls terminal rendering of an entry.
type RenderOptions struct {
	// Style is a glamour standard style name ("dark", "light", "notty").
	// Empty picks one from the terminal background.
	Style string
	// Width wraps text; 0 means 80 columns.
	Width int
}

// RenderEntry renders one entry as styled Markdown for the terminal.
func RenderEntry(e journal.Entry, opts RenderOptions) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = 80
	}

	style := glamour.WithAutoStyle()
	if opts.Style != "" {
		style = glamour.WithStandardStyle(opts.Style)
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	out, err := r.Render(EntryMarkdown(e))
	if err != nil {
		return "", fmt.Errorf("render entry: %w", err)
	}
	return out, nil
}
