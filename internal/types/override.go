package types

// Override is a per-verb usage correction supplied by the user or the
// built-in seed set. Fields are pointers so that an unset field can be
// told apart from an explicit false or empty string. An override entry
// replaces the seed entry for its verb wholesale; fields are never
// merged across layers.
type Override struct {
	IsPronominal         *bool   `json:"is_pronominal,omitempty"`
	PronominalInfinitive *string `json:"pronominal_infinitive,omitempty"`
	SeType               *SeType `json:"se_type,omitempty"`
	MeaningShift         *string `json:"meaning_shift,omitempty"`
	Notes                *string `json:"notes,omitempty"`
}

// IsZero reports whether no field of the override is set.
// A zero override behaves like a missing entry during enrichment.
func (o Override) IsZero() bool {
	return o.IsPronominal == nil &&
		o.PronominalInfinitive == nil &&
		o.SeType == nil &&
		o.MeaningShift == nil &&
		o.Notes == nil
}

// BoolPtr returns a pointer to b, for building override literals.
func BoolPtr(b bool) *bool { return &b }

// StringPtr returns a pointer to s, for building override literals.
func StringPtr(s string) *string { return &s }

// SeTypePtr returns a pointer to t, for building override literals.
func SeTypePtr(t SeType) *SeType { return &t }
