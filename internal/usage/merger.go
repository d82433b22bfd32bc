package usage

import (
	"github.com/jackzampolin/verbena/internal/overrides"
	"github.com/jackzampolin/verbena/internal/taxonomy"
	"github.com/jackzampolin/verbena/internal/types"
)

// Merger binds the taxonomy and override stores so callers can enrich
// verbs without threading snapshots around. Each call reads the
// current snapshots, so store reloads take effect immediately.
type Merger struct {
	taxonomy  *taxonomy.Store
	overrides *overrides.Store
}

// NewMerger creates a merger over the two stores.
func NewMerger(tax *taxonomy.Store, ov *overrides.Store) *Merger {
	return &Merger{taxonomy: tax, overrides: ov}
}

// Enrich returns a copy of verb with its usage record attached.
func (m *Merger) Enrich(verb types.Verb) types.Verb {
	return Merge(m.taxonomy.Snapshot(), m.overrides.All(), verb)
}

// Classify resolves the se type for a base/derived pair against the
// current taxonomy snapshot.
func (m *Merger) Classify(base, derived string) types.SeType {
	return Classify(m.taxonomy.Snapshot(), base, derived)
}
