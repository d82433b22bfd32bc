package usage

import (
	"strings"

	"github.com/jackzampolin/verbena/internal/taxonomy"
	"github.com/jackzampolin/verbena/internal/types"
)

// Classify determines the se type of a verb from taxonomy membership.
//
// Experiencer verbs are recognized by their base key alone and
// short-circuit every other check. Otherwise classification needs a
// derived form; without one the verb stays unclassified. Derived-form
// membership is checked in fixed precedence: accidental dative, then
// reflexive, then pronominal. A form catalogued under several roots
// always resolves to the highest-precedence one.
func Classify(snap *taxonomy.Snapshot, base, derived string) types.SeType {
	base = strings.ToLower(strings.TrimSpace(base))
	derived = strings.ToLower(strings.TrimSpace(derived))

	if snap.IsExperiencerBase(base) {
		return types.SeTypeExperiencer
	}
	if derived == "" {
		return ""
	}

	switch {
	case snap.HasDerived(taxonomy.RootAccidentalDative, derived):
		return types.SeTypeAccidentalDative
	case snap.HasDerived(taxonomy.RootReflexive, derived):
		return types.SeTypeReflexive
	case snap.HasDerived(taxonomy.RootPronominal, derived):
		return types.SeTypePronominal
	}
	return ""
}
