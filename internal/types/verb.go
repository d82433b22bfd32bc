package types

// Nonfinite holds the non-finite forms of a verb.
type Nonfinite struct {
	Gerund         string `json:"gerund,omitempty"`
	PastParticiple string `json:"past_participle,omitempty"`
}

// Conjugation is one mood/tense paradigm of a verb.
// Forms is keyed by grammatical person ("yo", "tú", ...).
type Conjugation struct {
	Mood        string            `json:"mood"`
	Tense       string            `json:"tense"`
	VerbEnglish string            `json:"verb_english,omitempty"`
	Forms       map[string]string `json:"forms"`
}

// Verb is a single dictionary record.
// Usage is nil until enrichment attaches classification data; enrichment
// always works on a copy and never mutates the stored record.
type Verb struct {
	Infinitive        string        `json:"infinitive"`
	InfinitiveEnglish string        `json:"infinitive_english,omitempty"`
	GlossEn           string        `json:"gloss_en,omitempty"`
	Nonfinite         Nonfinite     `json:"nonfinite"`
	Conjugations      []Conjugation `json:"conjugations,omitempty"`
	Usage             *Usage        `json:"usage,omitempty"`
}

// Usage is the merged pronominal/se classification attached to a verb.
// An empty SeType means the verb could not be classified.
type Usage struct {
	IsPronominal         bool   `json:"is_pronominal"`
	PronominalInfinitive string `json:"pronominal_infinitive,omitempty"`
	SeType               SeType `json:"se_type,omitempty"`
	MeaningShift         string `json:"meaning_shift,omitempty"`
	Notes                string `json:"notes"`
}
