package userdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/verbena/internal/schema"
)

// ErrInvalidKey is returned when a verb key is empty.
var ErrInvalidKey = errors.New("invalid verb key")

// ErrInvalidRating is returned when a rating falls outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ErrInvalidDocument is returned when an imported document fails
// validation.
var ErrInvalidDocument = errors.New("invalid user data document")

// Store owns the user data document. The document is treated as an
// immutable snapshot: mutations clone it, save the clone, then swap,
// so concurrent readers never observe a partial update.
type Store struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	doc    *Document
	loaded bool
}

// NewStore creates a user data store reading from and writing to path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Data returns a copy of the current document.
func (s *Store) Data() Document {
	return *s.snapshot().clone()
}

// IsFavourite reports whether a verb is in the favourites list.
func (s *Store) IsFavourite(infinitive string) bool {
	key := normalizeKey(infinitive)
	for _, fav := range s.snapshot().Favourites {
		if fav == key {
			return true
		}
	}
	return false
}

// Favourites returns the favourites list.
func (s *Store) Favourites() []string {
	return append([]string(nil), s.snapshot().Favourites...)
}

// FavouriteCount returns the number of favourites.
func (s *Store) FavouriteCount() int {
	return len(s.snapshot().Favourites)
}

// ToggleFavourite adds or removes a verb from the favourites and
// reports whether the verb is a favourite afterwards.
func (s *Store) ToggleFavourite(infinitive string) (bool, error) {
	key := normalizeKey(infinitive)
	if key == "" {
		return false, ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.docLocked().clone()

	removed := false
	kept := next.Favourites[:0]
	for _, fav := range next.Favourites {
		if fav == key {
			removed = true
			continue
		}
		kept = append(kept, fav)
	}
	next.Favourites = kept
	if !removed {
		next.Favourites = append(next.Favourites, key)
	}

	if err := s.commitLocked(next); err != nil {
		return false, err
	}
	return !removed, nil
}

// Rating returns the stored rating for a verb.
func (s *Store) Rating(infinitive string) (int, bool) {
	rating, ok := s.snapshot().Ratings[normalizeKey(infinitive)]
	return rating, ok
}

// SetRating stores a 1..5 rating for a verb; rating 0 clears it.
func (s *Store) SetRating(infinitive string, rating int) error {
	key := normalizeKey(infinitive)
	if key == "" {
		return ErrInvalidKey
	}
	if rating < 0 || rating > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.docLocked().clone()
	if rating == 0 {
		delete(next.Ratings, key)
	} else {
		next.Ratings[key] = rating
	}
	return s.commitLocked(next)
}

// Note returns the stored note for a verb.
func (s *Store) Note(infinitive string) (string, bool) {
	note, ok := s.snapshot().Notes[normalizeKey(infinitive)]
	return note, ok
}

// SetNote stores a free-text note for a verb; an empty note clears it.
func (s *Store) SetNote(infinitive, note string) error {
	key := normalizeKey(infinitive)
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.docLocked().clone()
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		delete(next.Notes, key)
	} else {
		next.Notes[key] = trimmed
	}
	return s.commitLocked(next)
}

// History returns the most recent view history entries, newest first.
// A limit <= 0 returns the full history.
func (s *Store) History(limit int) []HistoryEntry {
	history := s.snapshot().History
	if limit > 0 && limit < len(history) {
		history = history[:limit]
	}
	return append([]HistoryEntry(nil), history...)
}

// RecordView prepends a view history entry for a verb, dropping the
// oldest entries beyond the history bound.
func (s *Store) RecordView(infinitive string) error {
	key := normalizeKey(infinitive)
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.docLocked().clone()

	entry := HistoryEntry{
		ID:         uuid.New().String(),
		Infinitive: key,
		ViewedAt:   time.Now().UTC(),
	}
	next.History = append([]HistoryEntry{entry}, next.History...)
	if len(next.History) > maxHistory {
		next.History = next.History[:maxHistory]
	}
	return s.commitLocked(next)
}

// MergeFavourites unions the given favourites into the stored list.
func (s *Store) MergeFavourites(favourites []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.docLocked().clone()
	next.Favourites = unionFavourites(next.Favourites, favourites)
	return s.commitLocked(next)
}

// Export stamps the document and returns a copy of what was saved.
func (s *Store) Export() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.docLocked().clone()
	if err := s.commitLocked(next); err != nil {
		return Document{}, err
	}
	return *next.clone(), nil
}

// Import replaces the document with an externally supplied one after
// validating it, backfilling any missing collections. With
// mergeFavourites the existing favourites are unioned into the
// imported ones instead of being replaced.
func (s *Store) Import(data []byte, mergeFavourites bool) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := schema.Validate(schema.UserDataDocument, decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	doc.normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	if mergeFavourites {
		doc.Favourites = unionFavourites(s.docLocked().Favourites, doc.Favourites)
	}
	return s.commitLocked(&doc)
}

// Reload re-reads the document from disk now.
func (s *Store) Reload() {
	doc := s.load()
	s.mu.Lock()
	s.doc = doc
	s.loaded = true
	s.mu.Unlock()
}

// Invalidate drops the cached document; the next read reloads it.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.doc = nil
	s.loaded = false
	s.mu.Unlock()
}

func (s *Store) snapshot() *Document {
	s.mu.RLock()
	if s.loaded {
		doc := s.doc
		s.mu.RUnlock()
		return doc
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docLocked()
}

func (s *Store) docLocked() *Document {
	if !s.loaded {
		s.doc = s.load()
		s.loaded = true
	}
	return s.doc
}

// commitLocked stamps, saves, and swaps in the next document. Callers
// hold the write lock; the swap happens only after a successful write
// so memory and disk stay consistent.
func (s *Store) commitLocked(next *Document) error {
	stamp := nowStamp()
	next.LastUpdated = &stamp

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user data: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write user data: %w", err)
	}
	s.doc = next
	s.loaded = true
	return nil
}

// load reads the document from disk. Any failure degrades to the
// default empty document.
func (s *Store) load() *Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("user data missing, starting fresh", "path", s.path)
		} else {
			s.logger.Warn("user data unreadable, starting fresh", "path", s.path, "error", err)
		}
		return DefaultDocument()
	}

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		s.logger.Warn("user data malformed, starting fresh", "path", s.path, "error", err)
		return DefaultDocument()
	}
	if err := schema.Validate(schema.UserDataDocument, probe); err != nil {
		s.logger.Warn("user data failed validation, starting fresh", "path", s.path, "error", err)
		return DefaultDocument()
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("user data malformed, starting fresh", "path", s.path, "error", err)
		return DefaultDocument()
	}
	doc.normalize()
	return &doc
}

func normalizeKey(infinitive string) string {
	return strings.ToLower(strings.TrimSpace(infinitive))
}
