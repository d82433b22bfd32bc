// Package types provides shared types used across multiple packages.
// This package has no dependencies on other verbena packages to avoid import cycles.
package types

// SeType classifies how a verb participates in "se" constructions.
// The empty string means the verb is unclassified, which is a valid
// terminal state rather than an error.
type SeType string

const (
	// SeTypeReflexive marks self-directed verbs (lavarse).
	SeTypeReflexive SeType = "reflexive"
	// SeTypePronominal marks verbs whose pronominal form shifts meaning (irse).
	SeTypePronominal SeType = "pronominal"
	// SeTypeAccidentalDative marks unplanned-event verbs (caerse, "se me cayó").
	SeTypeAccidentalDative SeType = "accidental_dative"
	// SeTypeExperiencer marks gustar-like verbs with inverted subjects.
	SeTypeExperiencer SeType = "experiencer"
)

// String returns the wire representation of the se type.
func (s SeType) String() string {
	return string(s)
}

// IsValid reports whether s is one of the four known classifications.
// The empty (unclassified) value is not considered valid here; callers
// that accept it should check for "" separately.
func (s SeType) IsValid() bool {
	switch s {
	case SeTypeReflexive, SeTypePronominal, SeTypeAccidentalDative, SeTypeExperiencer:
		return true
	}
	return false
}

// ParseSeType converts a string to a SeType.
// Unrecognized strings return the empty (unclassified) value.
func ParseSeType(s string) SeType {
	t := SeType(s)
	if t.IsValid() {
		return t
	}
	return ""
}
