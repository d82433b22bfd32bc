package catalog

import (
	"sort"
	"strings"

	"github.com/jackzampolin/verbena/internal/taxonomy"
)

// StandardRoot keys the catch-all group for verbs that belong to no
// taxonomy root.
const StandardRoot = "standard"

const (
	standardLabel    = "Standard / Other"
	uncategorizedSub = "uncategorized"
)

// EndingGroup is one bucket of the ending-based browse view.
type EndingGroup struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Verbs []string `json:"verbs"`
}

// CategoryGroup is one taxonomy root in the category browse view.
type CategoryGroup struct {
	Root  string     `json:"root"`
	Label string     `json:"label"`
	Subs  []SubGroup `json:"sub_categories"`
}

// SubGroup is one sub-category block within a CategoryGroup.
type SubGroup struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Verbs []string `json:"verbs"`
}

// Alphabetical returns all infinitives sorted case-insensitively.
func (s *Snapshot) Alphabetical() []string {
	out := s.infinitives()
	sortLower(out)
	return out
}

// unranked sorts after every real frequency rank.
const unranked = 10_000_000

// ByFrequency returns all infinitives ordered by frequency rank with
// unranked verbs last, ties broken by infinitive.
func (s *Snapshot) ByFrequency() []string {
	out := s.infinitives()
	sort.Slice(out, func(i, j int) bool {
		ri, rj := s.rankOr(out[i], unranked), s.rankOr(out[j], unranked)
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// EndingBuckets groups infinitives by their ending. The -ar, -er, and
// -ir buckets are always present; "other" appears only when occupied.
func (s *Snapshot) EndingBuckets() []EndingGroup {
	buckets := map[string][]string{}
	for _, v := range s.verbs {
		key := endingKey(v.Infinitive)
		buckets[key] = append(buckets[key], v.Infinitive)
	}

	groups := []EndingGroup{
		{Key: "ar", Label: "-ar verbs", Verbs: buckets["ar"]},
		{Key: "er", Label: "-er verbs", Verbs: buckets["er"]},
		{Key: "ir", Label: "-ir verbs", Verbs: buckets["ir"]},
	}
	if len(buckets["other"]) > 0 {
		groups = append(groups, EndingGroup{Key: "other", Label: "Other", Verbs: buckets["other"]})
	}
	for i := range groups {
		sortLower(groups[i].Verbs)
	}
	return groups
}

func endingKey(infinitive string) string {
	inf := strings.ToLower(infinitive)
	switch {
	case strings.HasSuffix(inf, "ar"):
		return "ar"
	case strings.HasSuffix(inf, "er"):
		return "er"
	case strings.HasSuffix(inf, "ir"), strings.HasSuffix(inf, "ír"):
		return "ir"
	default:
		return "other"
	}
}

// categoryOrder fixes the browse order of the known taxonomy roots.
var categoryOrder = []string{
	taxonomy.RootExperiencer,
	taxonomy.RootAccidentalDative,
	taxonomy.RootReflexive,
	taxonomy.RootPronominal,
}

// GroupByCategory buckets every catalog verb into its taxonomy root and
// sub-category via the reverse lookup, which matches both base and
// derived spellings. Known roots come first in a fixed order, any other
// roots follow alphabetically, and verbs outside the taxonomy land in a
// final catch-all group. Sub-categories sort by display label.
func (s *Snapshot) GroupByCategory(tax *taxonomy.Snapshot) []CategoryGroup {
	grouped := map[string]map[string][]string{}
	subLabels := map[string]map[string]string{}
	var standard []string

	for _, inf := range s.Alphabetical() {
		m, ok := tax.Lookup(inf)
		if !ok {
			standard = append(standard, inf)
			continue
		}
		if grouped[m.Root] == nil {
			grouped[m.Root] = map[string][]string{}
			subLabels[m.Root] = map[string]string{}
		}
		grouped[m.Root][m.Sub] = append(grouped[m.Root][m.Sub], inf)
		subLabels[m.Root][m.Sub] = m.SubLabel
	}

	var out []CategoryGroup
	emit := func(root string) {
		subs, ok := grouped[root]
		if !ok {
			return
		}
		group := CategoryGroup{Root: root, Label: taxonomy.RootLabel(root)}
		for key, verbs := range subs {
			group.Subs = append(group.Subs, SubGroup{Key: key, Label: subLabels[root][key], Verbs: verbs})
		}
		sort.Slice(group.Subs, func(i, j int) bool {
			if group.Subs[i].Label != group.Subs[j].Label {
				return group.Subs[i].Label < group.Subs[j].Label
			}
			return group.Subs[i].Key < group.Subs[j].Key
		})
		out = append(out, group)
		delete(grouped, root)
	}

	for _, root := range categoryOrder {
		emit(root)
	}
	rest := make([]string, 0, len(grouped))
	for root := range grouped {
		rest = append(rest, root)
	}
	sort.Strings(rest)
	for _, root := range rest {
		emit(root)
	}

	if len(standard) > 0 {
		out = append(out, CategoryGroup{
			Root:  StandardRoot,
			Label: standardLabel,
			Subs: []SubGroup{{
				Key:   uncategorizedSub,
				Label: "Uncategorized",
				Verbs: standard,
			}},
		})
	}
	return out
}

func sortLower(values []string) {
	sort.Slice(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})
}
