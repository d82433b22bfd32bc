package overrides

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/jackzampolin/verbena/internal/schema"
	"github.com/jackzampolin/verbena/internal/types"
)

// ErrNotFound is returned when no user override exists for a verb.
var ErrNotFound = errors.New("override not found")

// ErrInvalidKey is returned when a verb key contains invalid characters.
var ErrInvalidKey = errors.New("invalid verb key")

// ValidateKey checks that a verb key looks like an infinitive:
// non-empty, unicode letters only. This protects against typos and
// malformed keys reaching the saved document.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	return nil
}

// Store caches the user override layer and persists changes. The user
// map is treated as an immutable snapshot: mutations build a new map,
// save it, then swap, so concurrent readers never observe a partial
// update. Entries at seed keys replace the seed in memory but are
// never written to disk.
type Store struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	user   map[string]types.Override
	loaded bool
}

// NewStore creates an override store reading from and writing to path.
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

// All returns the merged override map: seed entries overlaid by user
// entries, keyed by lowercase verb. The result is owned by the caller.
func (s *Store) All() map[string]types.Override {
	user := s.userSnapshot()
	merged := Seed()
	for k, v := range user {
		merged[k] = v
	}
	return merged
}

// Get returns the effective override for a verb.
func (s *Store) Get(verb string) (types.Override, bool) {
	key := strings.ToLower(strings.TrimSpace(verb))
	if o, ok := s.userSnapshot()[key]; ok {
		return o, true
	}
	o, ok := Seed()[key]
	return o, ok
}

// UserEntry returns the user-layer entry for a verb, ignoring the seed.
func (s *Store) UserEntry(verb string) (types.Override, bool) {
	o, ok := s.userSnapshot()[strings.ToLower(strings.TrimSpace(verb))]
	return o, ok
}

// Set stores a user override for a verb and saves the document.
// The entry replaces any seed entry for the same key while the store
// is live, but seed keys are still excluded from the saved file.
func (s *Store) Set(verb string, o types.Override) error {
	key := strings.ToLower(strings.TrimSpace(verb))
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	next := make(map[string]types.Override, len(s.user)+1)
	for k, v := range s.user {
		next[k] = v
	}
	next[key] = o

	if err := s.saveLocked(next); err != nil {
		return err
	}
	s.user = next
	return nil
}

// Delete removes the user entry for a verb, reverting it to the seed
// entry when one exists. Deleting a verb with no user entry returns
// ErrNotFound; seed entries themselves cannot be removed.
func (s *Store) Delete(verb string) error {
	key := strings.ToLower(strings.TrimSpace(verb))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	if _, ok := s.user[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	next := make(map[string]types.Override, len(s.user))
	for k, v := range s.user {
		if k != key {
			next[k] = v
		}
	}

	if err := s.saveLocked(next); err != nil {
		return err
	}
	s.user = next
	return nil
}

// Reload re-reads the override document from disk now.
func (s *Store) Reload() {
	user := s.load()
	s.mu.Lock()
	s.user = user
	s.loaded = true
	s.mu.Unlock()
}

// Invalidate drops the cached user layer; the next read reloads it.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.user = nil
	s.loaded = false
	s.mu.Unlock()
}

// UserCount returns the number of user-layer entries.
func (s *Store) UserCount() int {
	return len(s.userSnapshot())
}

func (s *Store) userSnapshot() map[string]types.Override {
	s.mu.RLock()
	if s.loaded {
		user := s.user
		s.mu.RUnlock()
		return user
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	return s.user
}

func (s *Store) ensureLoadedLocked() {
	if !s.loaded {
		s.user = s.load()
		s.loaded = true
	}
}

// load reads the user override document. Any failure degrades to an
// empty user layer so the seed entries keep working.
func (s *Store) load() map[string]types.Override {
	user := make(map[string]types.Override)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("override document missing, using built-in entries only", "path", s.path)
		} else {
			s.logger.Warn("override document unreadable, using built-in entries only", "path", s.path, "error", err)
		}
		return user
	}

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		s.logger.Warn("override document malformed, using built-in entries only", "path", s.path, "error", err)
		return user
	}
	raw, ok := probe.(map[string]any)
	if !ok {
		s.logger.Warn("override document is not an object, using built-in entries only", "path", s.path)
		return user
	}

	for key, val := range raw {
		if err := schema.Validate(schema.OverrideEntry, val); err != nil {
			s.logger.Debug("skipping invalid override entry", "verb", key, "error", err)
			continue
		}
		entryJSON, err := json.Marshal(val)
		if err != nil {
			s.logger.Debug("skipping unencodable override entry", "verb", key, "error", err)
			continue
		}
		var o types.Override
		if err := json.Unmarshal(entryJSON, &o); err != nil {
			s.logger.Debug("skipping undecodable override entry", "verb", key, "error", err)
			continue
		}
		user[strings.ToLower(key)] = o
	}
	return user
}

// saveLocked writes the non-seed entries of next to disk. Callers hold
// the write lock; the in-memory swap happens only after a successful
// write so memory and disk stay consistent.
func (s *Store) saveLocked(next map[string]types.Override) error {
	out := make(map[string]types.Override, len(next))
	for k, v := range next {
		if !IsSeedKey(k) {
			out[k] = v
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode overrides: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write overrides: %w", err)
	}
	return nil
}
