// Package catalog loads the verb dictionary together with its lookup
// index and frequency ranking, and serves immutable snapshots for
// lookup, search, and grouped browsing.
package catalog

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/jackzampolin/verbena/internal/schema"
	"github.com/jackzampolin/verbena/internal/types"
)

// Store caches a parsed catalog snapshot and reloads it on demand.
// Snapshot never returns nil: missing, unreadable, or malformed source
// files yield an empty snapshot with a warning, never an error.
type Store struct {
	verbsPath string
	indexPath string
	ranksPath string
	logger    *slog.Logger

	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a catalog store reading the verb database, lookup
// index, and frequency ranking from the given paths.
func NewStore(verbsPath, indexPath, ranksPath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		verbsPath: verbsPath,
		indexPath: indexPath,
		ranksPath: ranksPath,
		logger:    logger,
	}
}

// Snapshot returns the current snapshot, loading it first if the cache
// is empty or has been invalidated.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap != nil {
		return snap
	}
	return s.Reload()
}

// Reload parses the source files now and swaps in the fresh snapshot.
func (s *Store) Reload() *Snapshot {
	snap := s.load()
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return snap
}

// Invalidate drops the cached snapshot; the next Snapshot call reloads.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

func (s *Store) load() *Snapshot {
	verbs := s.loadVerbs()
	return &Snapshot{
		verbs: verbs,
		index: s.loadIndex(verbs),
		ranks: s.loadRanks(),
	}
}

func (s *Store) loadVerbs() []types.Verb {
	data, err := os.ReadFile(s.verbsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("verb database missing, starting empty", "path", s.verbsPath)
		} else {
			s.logger.Warn("verb database unreadable, starting empty", "path", s.verbsPath, "error", err)
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("verb database malformed, starting empty", "path", s.verbsPath, "error", err)
		return nil
	}

	verbs := make([]types.Verb, 0, len(raw))
	for i, entry := range raw {
		var decoded any
		if err := json.Unmarshal(entry, &decoded); err != nil {
			s.logger.Debug("skipping unreadable verb entry", "index", i, "error", err)
			continue
		}
		if err := schema.Validate(schema.VerbEntry, decoded); err != nil {
			s.logger.Debug("skipping invalid verb entry", "index", i, "error", err)
			continue
		}
		var v types.Verb
		if err := json.Unmarshal(entry, &v); err != nil {
			s.logger.Debug("skipping undecodable verb entry", "index", i, "error", err)
			continue
		}
		verbs = append(verbs, v)
	}
	return verbs
}

// loadIndex reads the on-disk lookup index and verifies it against the
// loaded verbs. A missing, malformed, or out-of-sync index falls back
// to offsets derived from the database itself, so a stale index file
// can never point lookups at the wrong entry.
func (s *Store) loadIndex(verbs []types.Verb) map[string]int {
	derived := deriveIndex(verbs)

	data, err := os.ReadFile(s.indexPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("lookup index missing, deriving from the database", "path", s.indexPath)
		} else {
			s.logger.Warn("lookup index unreadable, deriving from the database", "path", s.indexPath, "error", err)
		}
		return derived
	}

	var index map[string]int
	if err := json.Unmarshal(data, &index); err != nil {
		s.logger.Warn("lookup index malformed, deriving from the database", "path", s.indexPath, "error", err)
		return derived
	}
	if !sameIndex(index, derived) {
		s.logger.Warn("lookup index out of sync with the database, using derived offsets", "path", s.indexPath)
		return derived
	}
	return index
}

func deriveIndex(verbs []types.Verb) map[string]int {
	index := make(map[string]int, len(verbs))
	for i, v := range verbs {
		index[strings.ToLower(v.Infinitive)] = i
	}
	return index
}

func sameIndex(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || v != w {
			return false
		}
	}
	return true
}

func (s *Store) loadRanks() map[string]int {
	data, err := os.ReadFile(s.ranksPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("frequency ranking missing, treating all verbs as unranked", "path", s.ranksPath)
		} else {
			s.logger.Warn("frequency ranking unreadable, treating all verbs as unranked", "path", s.ranksPath, "error", err)
		}
		return map[string]int{}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("frequency ranking malformed, treating all verbs as unranked", "path", s.ranksPath, "error", err)
		return map[string]int{}
	}

	ranks := make(map[string]int, len(raw))
	for verb, value := range raw {
		rank, ok := coerceRank(value)
		if !ok {
			s.logger.Debug("skipping non-integer frequency rank", "infinitive", verb, "value", value)
			continue
		}
		ranks[strings.ToLower(verb)] = rank
	}
	return ranks
}

// coerceRank converts a decoded JSON value to an integer rank. Floats
// truncate and numeric strings parse; anything else is rejected.
func coerceRank(value any) (int, bool) {
	switch n := value.(type) {
	case float64:
		return int(n), true
	case string:
		rank, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return rank, true
	}
	return 0, false
}
