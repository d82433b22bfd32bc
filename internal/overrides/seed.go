// Package overrides persists per-verb usage corrections. A built-in
// seed set ships in code; user entries layer over it by verb key, each
// entry replacing the seed entry wholesale. Only non-seed keys are ever
// written to disk, so the seed stays authoritative across upgrades.
package overrides

import (
	"strings"

	"github.com/jackzampolin/verbena/internal/types"
)

// seedKeys gives O(1) membership checks without building entries.
var seedKeys = map[string]bool{
	"lavar":  true,
	"ir":     true,
	"caer":   true,
	"gustar": true,
}

// Seed returns the built-in override entries, one exemplar per se
// classification. The map is freshly built on every call so callers
// can layer over it safely.
func Seed() map[string]types.Override {
	return map[string]types.Override{
		"lavar": {
			IsPronominal:         types.BoolPtr(true),
			PronominalInfinitive: types.StringPtr("lavarse"),
			SeType:               types.SeTypePtr(types.SeTypeReflexive),
			MeaningShift:         types.StringPtr("subject washes self"),
		},
		"ir": {
			IsPronominal:         types.BoolPtr(true),
			PronominalInfinitive: types.StringPtr("irse"),
			SeType:               types.SeTypePtr(types.SeTypePronominal),
			MeaningShift:         types.StringPtr("departure / leaving"),
		},
		"caer": {
			IsPronominal:         types.BoolPtr(true),
			PronominalInfinitive: types.StringPtr("caerse"),
			SeType:               types.SeTypePtr(types.SeTypeAccidentalDative),
			MeaningShift:         types.StringPtr("fall/drop accidentally"),
		},
		"gustar": {
			IsPronominal: types.BoolPtr(false),
			SeType:       types.SeTypePtr(types.SeTypeExperiencer),
			MeaningShift: types.StringPtr("pleases (inverted subject)"),
		},
	}
}

// IsSeedKey reports whether verb has a built-in entry.
func IsSeedKey(verb string) bool {
	return seedKeys[strings.ToLower(verb)]
}
