package taxonomy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// rootLabels are the fixed display labels for the four known roots.
var rootLabels = map[string]string{
	RootReflexive:        "🪞 Reflexive (Self-directed)",
	RootPronominal:       "🔄 Pronominal (Meaning Shift)",
	RootAccidentalDative: "💥 Accidental Se (Se me...)",
	RootExperiencer:      "🧠 Experiencer (Gustar-like)",
}

// RootLabel returns the display label for a root key. Unknown roots
// still render via a title-cased fallback.
func RootLabel(root string) string {
	if label, ok := rootLabels[root]; ok {
		return label
	}
	return titleCase(root)
}

// SubLabel turns a snake_case sub-category key into a display label.
func SubLabel(sub string) string {
	return titleCase(strings.ReplaceAll(sub, "_", " "))
}

// titleCase builds its caser per call; cases.Caser is not safe for
// concurrent use.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
