// Package journal holds the developer-log entry model and the Entry Store that
// keeps the ordered entry list in sync with a blob store.
package journal

import (
	"strings"
	"unicode/utf8"
)

// DefaultMood is used when a draft leaves the mood empty.
const DefaultMood = "📝"

// DateLayout is the calendar format of Entry.Date.
const DateLayout = "2006-01-02"

const (
	previewLen    = 60
	previewMarker = "..."
)

// Entry is a single journal record. The JSON field names are the on-disk
// format of the stored blob.
type Entry struct {
	ID      int64    `json:"id"`
	Date    string   `json:"date"` // YYYY-MM-DD
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Preview string   `json:"preview"` // derived from Content
	Content string   `json:"content"`
	Mood    string   `json:"mood"`
}

// Draft is the user-editable part of an entry as typed into the form.
type Draft struct {
	Title   string
	Tags    string // comma separated
	Mood    string
	Content string
}

// DraftFrom pre-populates a draft with the fields of e.
func DraftFrom(e Entry) Draft {
	return Draft{
		Title:   e.Title,
		Tags:    FormatTags(e.Tags),
		Mood:    e.Mood,
		Content: e.Content,
	}
}

// apply copies the draft onto e and recomputes the preview. ID and Date are
// left alone. Only an empty mood falls back to the default.
func (d Draft) apply(e *Entry, defaultMood string) {
	e.Title = d.Title
	e.Tags = ParseTags(d.Tags)
	e.Mood = d.Mood
	if e.Mood == "" {
		e.Mood = defaultMood
	}
	e.Content = d.Content
	e.Preview = Preview(d.Content)
}

// ParseTags splits a comma-separated tag string, trimming each segment.
// An empty input yields an empty (non-nil) slice. Order and duplicates are
// kept as typed.
func ParseTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, len(parts))
	for i, p := range parts {
		tags[i] = strings.TrimSpace(p)
	}
	return tags
}

// FormatTags is the inverse of ParseTags for form pre-population.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Preview returns the first 60 characters of content, followed by "..." when
// content is longer than that.
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLen {
		return content
	}
	runes := []rune(content)
	return string(runes[:previewLen]) + previewMarker
}
