package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"devlog/internal/storage"

	"go.uber.org/zap"
)

// DefaultKey is the blob key the entry list is stored under.
const DefaultKey = "devlog-entries"

// Store owns the ordered entry list (newest first) and writes the whole list
// back to its blob after every mutation.
type Store struct {
	blob        storage.Blob
	key         string
	entries     []Entry
	defaultMood string
	now         func() time.Time // injectable clock for deterministic tests
	log         *zap.SugaredLogger
}

// NewStore creates a Store backed by blob. An empty key selects DefaultKey.
// The list starts empty; call Load to read it.
func NewStore(blob storage.Blob, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		blob:        blob,
		key:         key,
		entries:     []Entry{},
		defaultMood: DefaultMood,
		now:         time.Now,
		log:         zap.NewNop().Sugar(),
	}
}

// SetNowFunc overrides the clock used for ids and dates. Passing nil resets
// it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// SetLogger replaces the store logger.
func (s *Store) SetLogger(log *zap.SugaredLogger) {
	if log != nil {
		s.log = log
	}
}

// SetDefaultMood changes the glyph used when a draft has no mood.
func (s *Store) SetDefaultMood(mood string) {
	if strings.TrimSpace(mood) != "" {
		s.defaultMood = mood
	}
}

// Key returns the blob key.
func (s *Store) Key() string {
	return s.key
}

// ============================================================================
// Persistence
// ============================================================================

// Load reads the entry list from the blob. A missing or unreadable value
// falls back to the seed entries; Load never fails.
func (s *Store) Load() []Entry {
	s.entries = s.read()
	return s.Entries()
}

func (s *Store) read() []Entry {
	raw, err := s.blob.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warnw("read journal failed, using seed entries", "key", s.key, "error", err)
		}
		return SeedEntries()
	}
	if strings.TrimSpace(raw) == "" {
		return SeedEntries()
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warnw("parse journal failed, using seed entries", "key", s.key, "error", err)
		return SeedEntries()
	}
	// A stored JSON null decodes to a nil slice.
	if entries == nil {
		return SeedEntries()
	}
	for i := range entries {
		if entries[i].Tags == nil {
			entries[i].Tags = []string{}
		}
	}
	return entries
}

// Persist serializes the full list and overwrites the blob.
func (s *Store) Persist() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("serialize journal: %w", err)
	}
	if err := s.blob.Set(s.key, string(data)); err != nil {
		s.log.Errorw("persist journal failed", "key", s.key, "entries", len(s.entries), "error", err)
		return fmt.Errorf("persist journal: %w", err)
	}
	s.log.Debugw("journal persisted", "key", s.key, "entries", len(s.entries))
	return nil
}

// ============================================================================
// Mutations
// ============================================================================

// Create builds a new entry from d, dated with the current UTC calendar day,
// prepends it and persists. The entry is kept in memory even when the write
// fails; the error is returned alongside.
func (s *Store) Create(d Draft) (Entry, error) {
	now := s.now()
	e := Entry{
		ID:   s.nextID(now),
		Date: now.UTC().Format(DateLayout),
	}
	d.apply(&e, s.defaultMood)

	s.entries = append([]Entry{e}, s.entries...)
	s.log.Infow("entry created", "id", e.ID, "title", e.Title)
	return e, s.Persist()
}

// Update replaces the editable fields of the entry with the given id. ID,
// date and list position are kept. When no entry has that id, Update does
// nothing and reports false.
func (s *Store) Update(id int64, d Draft) (Entry, bool, error) {
	i := s.IndexOf(id)
	if i < 0 {
		s.log.Debugw("update skipped, entry not found", "id", id)
		return Entry{}, false, nil
	}
	d.apply(&s.entries[i], s.defaultMood)
	s.log.Infow("entry updated", "id", id, "title", s.entries[i].Title)
	return s.entries[i], true, s.Persist()
}

// Delete removes the entry at index and persists. An out-of-range index is
// ignored.
func (s *Store) Delete(index int) error {
	if index < 0 || index >= len(s.entries) {
		return nil
	}
	removed := s.entries[index]
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	s.log.Infow("entry deleted", "id", removed.ID, "title", removed.Title)
	return s.Persist()
}

// nextID uses the creation time in milliseconds, bumped past any id already
// in the list.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for s.IndexOf(id) >= 0 {
		id++
	}
	return id
}

// ============================================================================
// Accessors
// ============================================================================

// Entries returns a copy of the list.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// At returns the entry at index i.
func (s *Store) At(i int) (Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// IndexOf returns the position of the entry with id, or -1.
func (s *Store) IndexOf(id int64) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}
