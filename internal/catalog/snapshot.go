package catalog

import (
	"strings"

	"github.com/jackzampolin/verbena/internal/types"
)

// Snapshot is an immutable view of the loaded verb catalog. It is safe
// for concurrent use; a reload swaps in a new snapshot rather than
// mutating an existing one.
type Snapshot struct {
	verbs []types.Verb
	index map[string]int
	ranks map[string]int
}

// Len returns the number of catalog entries.
func (s *Snapshot) Len() int {
	return len(s.verbs)
}

// Verbs returns the catalog entries in document order.
func (s *Snapshot) Verbs() []types.Verb {
	out := make([]types.Verb, len(s.verbs))
	copy(out, s.verbs)
	return out
}

// Get returns the entry for an infinitive, resolved through the lookup
// index. Lookups are case-insensitive.
func (s *Snapshot) Get(infinitive string) (types.Verb, bool) {
	idx, ok := s.index[strings.ToLower(strings.TrimSpace(infinitive))]
	if !ok || idx < 0 || idx >= len(s.verbs) {
		return types.Verb{}, false
	}
	return s.verbs[idx], true
}

// Rank returns the frequency rank for an infinitive.
func (s *Snapshot) Rank(infinitive string) (int, bool) {
	rank, ok := s.ranks[strings.ToLower(strings.TrimSpace(infinitive))]
	return rank, ok
}

// Search returns entries whose infinitive starts with the query, or
// whose English gloss or any per-tense English gloss contains it.
// Matching is case-insensitive. A limit <= 0 means no limit. An empty
// query returns nil.
func (s *Snapshot) Search(query string, limit int) []types.Verb {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []types.Verb
	for _, v := range s.verbs {
		if strings.HasPrefix(strings.ToLower(v.Infinitive), q) || matchesEnglish(v, q) {
			out = append(out, v)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

func matchesEnglish(v types.Verb, q string) bool {
	gloss := v.InfinitiveEnglish
	if gloss == "" {
		gloss = v.GlossEn
	}
	if gloss != "" && strings.Contains(strings.ToLower(gloss), q) {
		return true
	}
	for _, c := range v.Conjugations {
		if c.VerbEnglish != "" && strings.Contains(strings.ToLower(c.VerbEnglish), q) {
			return true
		}
	}
	return false
}

func (s *Snapshot) infinitives() []string {
	out := make([]string, 0, len(s.verbs))
	for _, v := range s.verbs {
		out = append(out, v.Infinitive)
	}
	return out
}

func (s *Snapshot) rankOr(infinitive string, fallback int) int {
	if rank, ok := s.ranks[strings.ToLower(infinitive)]; ok {
		return rank
	}
	return fallback
}
