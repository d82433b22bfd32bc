package taxonomy

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/jackzampolin/verbena/internal/types"
)

// Membership locates a surface form (base or derived) within the
// taxonomy.
type Membership struct {
	Root      string `json:"root"`
	RootLabel string `json:"root_label"`
	Sub       string `json:"sub_category"`
	SubLabel  string `json:"sub_label"`
}

// Snapshot is an immutable view of a parsed taxonomy document.
// All indexes are built once at load time; callers must not mutate
// returned maps or slices.
type Snapshot struct {
	doc         Document
	flat        map[string]map[string]string
	derived     map[string]map[string]bool
	experiencer map[string]bool
	reverse     map[string]Membership
	templates   map[string]types.Template
}

// buildSnapshot indexes a parsed document. Roots and sub-categories
// are processed in document order, so a base verb catalogued twice
// resolves to its last occurrence. Classification sets are derived
// from the final flattened maps, while the reverse lookup registers
// every form it encounters along the way.
func buildSnapshot(doc Document, logger *slog.Logger) *Snapshot {
	if logger == nil {
		logger = slog.Default()
	}

	snap := &Snapshot{
		doc:         doc,
		flat:        make(map[string]map[string]string),
		derived:     make(map[string]map[string]bool),
		experiencer: make(map[string]bool),
		reverse:     make(map[string]Membership),
		templates:   make(map[string]types.Template, len(doc.Templates)),
	}

	for _, nr := range doc.Roots {
		rootLabel := RootLabel(nr.Key)
		flat := make(map[string]string)

		for _, nc := range nr.Root.Categories {
			subLabel := SubLabel(nc.Key)
			for base, val := range nc.Sub.Verbs {
				baseKey := strings.ToLower(base)
				if baseKey == "" {
					continue
				}
				if !val.Valid() {
					logger.Debug("skipping malformed taxonomy value",
						"root", nr.Key,
						"sub_category", nc.Key,
						"verb", baseKey)
				}

				m := Membership{
					Root:      nr.Key,
					RootLabel: rootLabel,
					Sub:       nc.Key,
					SubLabel:  subLabel,
				}
				snap.reverse[baseKey] = m
				if nr.Key == RootExperiencer {
					snap.experiencer[baseKey] = true
				}

				d := strings.ToLower(strings.TrimSpace(val.Derived()))
				if d == "" {
					continue
				}
				flat[baseKey] = d
				snap.reverse[d] = m
			}
		}

		derivedSet := make(map[string]bool, len(flat))
		for _, d := range flat {
			derivedSet[d] = true
		}
		snap.flat[nr.Key] = flat
		snap.derived[nr.Key] = derivedSet
	}

	for id, tmpl := range doc.Templates {
		if tmpl.Name == "" {
			tmpl.Name = id
		}
		snap.templates[id] = tmpl
	}

	return snap
}

// FlatMap returns the base-to-derived mapping for a root. The returned
// map is shared; callers must not mutate it.
func (s *Snapshot) FlatMap(root string) map[string]string {
	return s.flat[root]
}

// HasDerived reports whether form is a derived form under the given root.
func (s *Snapshot) HasDerived(root, form string) bool {
	return s.derived[root][strings.ToLower(form)]
}

// IsExperiencerBase reports whether base is catalogued under the
// experiencer root. Experiencer membership is by base key; these verbs
// carry no derived form.
func (s *Snapshot) IsExperiencerBase(base string) bool {
	return s.experiencer[strings.ToLower(base)]
}

// Lookup returns the taxonomy membership of a surface form, matching
// base and derived spellings alike.
func (s *Snapshot) Lookup(form string) (Membership, bool) {
	m, ok := s.reverse[strings.ToLower(strings.TrimSpace(form))]
	return m, ok
}

// Template returns the template with the given id.
func (s *Snapshot) Template(id string) (types.Template, bool) {
	t, ok := s.templates[id]
	return t, ok
}

// Templates returns the template map. Shared; callers must not mutate.
func (s *Snapshot) Templates() map[string]types.Template {
	return s.templates
}

// TemplateIDs returns the template ids in sorted order.
func (s *Snapshot) TemplateIDs() []string {
	ids := make([]string, 0, len(s.templates))
	for id := range s.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FormCount returns the number of surface forms the reverse lookup
// knows about.
func (s *Snapshot) FormCount() int {
	return len(s.reverse)
}

// RootView summarizes one root for browsing, in document order.
type RootView struct {
	Key        string    `json:"key"`
	Label      string    `json:"label"`
	Categories []SubView `json:"categories"`
}

// SubView summarizes one sub-category: base infinitive to resolved
// derived form (empty when the entry has none).
type SubView struct {
	Key   string            `json:"key"`
	Label string            `json:"label"`
	Verbs map[string]string `json:"verbs"`
}

// Roots returns browse views of every root in document order.
func (s *Snapshot) Roots() []RootView {
	views := make([]RootView, 0, len(s.doc.Roots))
	for _, nr := range s.doc.Roots {
		rv := RootView{Key: nr.Key, Label: RootLabel(nr.Key)}
		for _, nc := range nr.Root.Categories {
			sv := SubView{
				Key:   nc.Key,
				Label: SubLabel(nc.Key),
				Verbs: make(map[string]string, len(nc.Sub.Verbs)),
			}
			for base, val := range nc.Sub.Verbs {
				baseKey := strings.ToLower(base)
				if baseKey == "" {
					continue
				}
				sv.Verbs[baseKey] = strings.ToLower(strings.TrimSpace(val.Derived()))
			}
			rv.Categories = append(rv.Categories, sv)
		}
		views = append(views, rv)
	}
	return views
}
