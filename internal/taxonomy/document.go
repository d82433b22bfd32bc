// Package taxonomy loads and indexes the categorized-verb document:
// four "se" roots, each with sub-categories mapping base infinitives to
// derived pronominal forms, plus the practice-prompt templates. The
// parsed document is exposed through immutable snapshots so readers
// never observe a partially rebuilt index.
package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jackzampolin/verbena/internal/types"
)

// Root keys of the taxonomy. They line up with the se_type
// classification values so membership translates directly.
const (
	RootReflexive        = "reflexive"
	RootPronominal       = "pronominal"
	RootAccidentalDative = "accidental_dative"
	RootExperiencer      = "experiencer"
)

// Document is the parsed verbs_categorized.json source.
type Document struct {
	Roots     []NamedRoot
	Templates map[string]types.Template
}

// NamedRoot pairs a root key with its content. The slice preserves
// document order so that a base verb appearing twice resolves
// deterministically: the later occurrence wins.
type NamedRoot struct {
	Key  string
	Root Root
}

// Root holds the sub-categories of one taxonomy root.
type Root struct {
	Categories []NamedSubCategory
}

// NamedSubCategory pairs a sub-category key with its verbs, again in
// document order.
type NamedSubCategory struct {
	Key string
	Sub SubCategory
}

// SubCategory maps base infinitives to their derived-form values.
type SubCategory struct {
	Verbs map[string]VerbValue `json:"verbs"`
}

// VerbValue is the value side of a taxonomy verb entry: either a bare
// derived-form string or an object carrying form and related_pronominal.
// A value of any other shape decodes as invalid rather than failing the
// containing document.
type VerbValue struct {
	Form              string `json:"form"`
	RelatedPronominal string `json:"related_pronominal"`

	invalid bool
}

// Derived resolves the derived form, preferring form and falling back
// to related_pronominal. Empty means the entry has no usable derived
// form, which is normal for experiencer verbs.
func (v VerbValue) Derived() string {
	if v.Form != "" {
		return v.Form
	}
	return v.RelatedPronominal
}

// Valid reports whether the source value had a usable shape.
func (v VerbValue) Valid() bool {
	return !v.invalid
}

// UnmarshalJSON accepts "lavarse" or {"form": ..., "related_pronominal": ...}.
func (v *VerbValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = VerbValue{Form: s}
		return nil
	}

	type plain VerbValue
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*v = VerbValue{invalid: true}
		return nil
	}
	*v = VerbValue(p)
	return nil
}

// UnmarshalJSON decodes the document, walking verb_taxonomy with a
// token decoder to keep source order.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		VerbTaxonomy json.RawMessage           `json:"verb_taxonomy"`
		Templates    map[string]types.Template `json:"templates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Templates = raw.Templates

	roots, err := decodeOrderedRoots(raw.VerbTaxonomy)
	if err != nil {
		return err
	}
	d.Roots = roots
	return nil
}

func decodeOrderedRoots(raw json.RawMessage) ([]NamedRoot, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("verb_taxonomy: %w", err)
	}

	var roots []NamedRoot
	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return nil, fmt.Errorf("verb_taxonomy: %w", err)
		}
		var root Root
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("verb_taxonomy root %q: %w", key, err)
		}
		roots = append(roots, NamedRoot{Key: key, Root: root})
	}
	return roots, nil
}

// UnmarshalJSON decodes a root, walking categories in source order.
func (r *Root) UnmarshalJSON(data []byte) error {
	var raw struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Categories) == 0 || bytes.Equal(raw.Categories, []byte("null")) {
		r.Categories = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Categories))
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("categories: %w", err)
	}

	var cats []NamedSubCategory
	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		var sub SubCategory
		if err := dec.Decode(&sub); err != nil {
			return fmt.Errorf("category %q: %w", key, err)
		}
		cats = append(cats, NamedSubCategory{Key: key, Sub: sub})
	}
	r.Categories = cats
	return nil
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != json.Delim(want) {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
