// Package prompts renders practice-prompt templates against verb
// records. Templates live in the taxonomy document and reference a
// small fixed set of {placeholder} substitution points.
package prompts

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jackzampolin/verbena/internal/taxonomy"
	"github.com/jackzampolin/verbena/internal/types"
	"github.com/jackzampolin/verbena/internal/usage"
)

// ErrUnknownPlaceholder is returned when a template references a
// placeholder outside the supported set. This is an authoring defect
// and fails the render outright rather than producing partial output.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// placeholderPattern matches {placeholder} substitution points. Any
// brace group counts as a placeholder, so misspelled or malformed
// names surface as render errors instead of passing through silently.
var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// Placeholders templates may reference.
const (
	PlaceholderInfinitive           = "infinitive"
	PlaceholderPronominalInfinitive = "pronominal_infinitive"
	PlaceholderMeaningShift         = "meaning_shift"
)

// defaultMeaningShift fills {meaning_shift} for verbs with no recorded
// shift.
const defaultMeaningShift = "Standard usage"

// ExtractPlaceholders returns the sorted, deduplicated placeholder
// names referenced by a template body.
func ExtractPlaceholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)

	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Render fills a template body with values derived from a verb record.
//
// The base and pronominal spellings come from the verb's usage record
// when present, otherwise from the "-se" suffix of the raw infinitive.
// A record whose raw infinitive is already the pronominal spelling
// (hacerse) contributes its stripped base for {infinitive}. Every
// placeholder in the body is checked against the supported set before
// substitution.
func Render(tmpl types.Template, verb types.Verb) (string, error) {
	values := substitutionValues(verb)

	for _, name := range ExtractPlaceholders(tmpl.Prompt) {
		if _, ok := values[name]; !ok {
			return "", fmt.Errorf("%w: {%s}", ErrUnknownPlaceholder, name)
		}
	}

	pairs := make([]string, 0, len(values)*2)
	for name, val := range values {
		pairs = append(pairs, "{"+name+"}", val)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl.Prompt), nil
}

// RenderByID renders the template with the given id from the snapshot.
// An unknown id yields an empty string with no error; absent templates
// are "no data", not a failure.
func RenderByID(snap *taxonomy.Snapshot, id string, verb types.Verb) (string, error) {
	tmpl, ok := snap.Template(id)
	if !ok {
		return "", nil
	}
	return Render(tmpl, verb)
}

func substitutionValues(verb types.Verb) map[string]string {
	raw := strings.TrimSpace(verb.Infinitive)
	if raw == "" {
		raw = "VERB"
	}

	usagePron := ""
	if verb.Usage != nil {
		usagePron = strings.TrimSpace(verb.Usage.PronominalInfinitive)
	}

	var base, pronominal string
	switch {
	case usagePron != "":
		pronominal = usagePron
		base = raw
		if raw == pronominal && usage.HasSeSuffix(raw) {
			base = usage.StripSe(raw)
		}
	case usage.HasSeSuffix(raw):
		pronominal = raw
		base = usage.StripSe(raw)
	default:
		base = raw
		pronominal = usage.AppendSe(raw)
	}

	shift := defaultMeaningShift
	if verb.Usage != nil && verb.Usage.MeaningShift != "" {
		shift = verb.Usage.MeaningShift
	}

	return map[string]string{
		PlaceholderInfinitive:           base,
		PlaceholderPronominalInfinitive: pronominal,
		PlaceholderMeaningShift:         shift,
	}
}
