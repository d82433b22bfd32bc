package usage

import (
	"strings"

	"github.com/jackzampolin/verbena/internal/taxonomy"
	"github.com/jackzampolin/verbena/internal/types"
)

// Meaning-shift descriptors applied during enrichment.
const (
	// pronominalSeedShift marks verbs whose usage was seeded from the
	// pronominal root without an override to name the shift.
	pronominalSeedShift = "meaning shift (see category in json)"
	// reflexiveSeedShift marks verbs seeded from the reflexive root.
	reflexiveSeedShift = "reflexive (self-directed)"
	// experiencerShift always replaces the meaning shift when the
	// classifier lands on experiencer.
	experiencerShift = "Psychological/Experiencer (IO construction)"
)

// Merge attaches a usage record to a verb from the override map and
// taxonomy membership, returning an enriched copy. The stored verb is
// never mutated.
//
// An override entry with at least one field set supplies the starting
// values and suppresses taxonomy seeding entirely. With no entry (or an
// empty one), membership in the pronominal root seeds the usage first,
// then the reflexive root. The classifier then re-runs on the resolved
// forms and overwrites se_type whenever it returns a classification;
// an experiencer result also forces the meaning shift to its fixed
// descriptor. Merging an already-enriched verb yields the same record.
func Merge(snap *taxonomy.Snapshot, ov map[string]types.Override, verb types.Verb) types.Verb {
	base := strings.ToLower(strings.TrimSpace(verb.Infinitive))

	o, hasOverride := ov[base]

	var u types.Usage
	if hasOverride {
		if o.IsPronominal != nil {
			u.IsPronominal = *o.IsPronominal
		}
		if o.PronominalInfinitive != nil {
			u.PronominalInfinitive = *o.PronominalInfinitive
		}
		if o.SeType != nil {
			u.SeType = *o.SeType
		}
		if o.MeaningShift != nil {
			u.MeaningShift = *o.MeaningShift
		}
		if o.Notes != nil {
			u.Notes = *o.Notes
		}
	}

	if !hasOverride || o.IsZero() {
		if derived, ok := snap.FlatMap(taxonomy.RootPronominal)[base]; ok {
			u.IsPronominal = true
			u.PronominalInfinitive = derived
			u.MeaningShift = pronominalSeedShift
		} else if derived, ok := snap.FlatMap(taxonomy.RootReflexive)[base]; ok {
			u.IsPronominal = true
			u.PronominalInfinitive = derived
			u.MeaningShift = reflexiveSeedShift
		}
	}

	if u.IsPronominal && u.PronominalInfinitive != "" {
		if computed := Classify(snap, base, u.PronominalInfinitive); computed != "" {
			u.SeType = computed
			if computed == types.SeTypeExperiencer {
				u.MeaningShift = experiencerShift
			}
		}
	} else if Classify(snap, base, "") == types.SeTypeExperiencer {
		u.SeType = types.SeTypeExperiencer
		u.MeaningShift = experiencerShift
	}

	out := verb
	out.Usage = &u
	if out.GlossEn == "" {
		out.GlossEn = out.InfinitiveEnglish
	}
	return out
}
