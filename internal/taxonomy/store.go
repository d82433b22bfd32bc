package taxonomy

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/jackzampolin/verbena/internal/schema"
)

// Store caches a parsed taxonomy snapshot and reloads it on demand.
// Snapshot never returns nil: a missing, unreadable, or malformed
// source file yields an empty snapshot with a warning, never an error.
type Store struct {
	path   string
	logger *slog.Logger

	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a taxonomy store reading from path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the source file path.
func (s *Store) Path() string {
	return s.path
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

// Reload parses the source file now and swaps in the fresh snapshot.
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
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("taxonomy document missing, starting empty", "path", s.path)
		} else {
			s.logger.Warn("taxonomy document unreadable, starting empty", "path", s.path, "error", err)
		}
		return buildSnapshot(Document{}, s.logger)
	}

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		s.logger.Warn("taxonomy document malformed, starting empty", "path", s.path, "error", err)
		return buildSnapshot(Document{}, s.logger)
	}
	if err := schema.Validate(schema.TaxonomyDocument, probe); err != nil {
		s.logger.Warn("taxonomy document failed validation, starting empty", "path", s.path, "error", err)
		return buildSnapshot(Document{}, s.logger)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("taxonomy document malformed, starting empty", "path", s.path, "error", err)
		return buildSnapshot(Document{}, s.logger)
	}
	return buildSnapshot(doc, s.logger)
}
