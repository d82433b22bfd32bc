package conjugation

import (
	"strings"

	"github.com/jackzampolin/verbena/internal/types"
	"github.com/jackzampolin/verbena/internal/usage"
)

// VosPresent returns the voseo present-indicative form derived from the
// infinitive with regular voseo morphology (hablar→hablás, comer→comés,
// vivir→vivís). ser is irregular (sos). Monosyllabic results take no
// written accent (dar→das, ver→ves). A clitic prefix on the tú form is
// preserved (te lavas→te lavás). When no form can be derived the tú
// form is returned, which is also the correct voseo form for ir (vas).
func VosPresent(infinitive, tuForm string) string {
	base := normalize(infinitive)
	prefix := cliticPrefix(tuForm)
	if base == "ser" {
		return prefix + "sos"
	}

	stem, vowel, ok := splitInfinitive(base)
	if !ok || stem == "" {
		return tuForm
	}
	if !containsVowel(stem) {
		return prefix + stem + vowel + "s"
	}
	return prefix + stem + accented(vowel) + "s"
}

// VosImperative returns the affirmative voseo imperative: the
// infinitive minus its final r with the final vowel accented
// (hablar→hablá, comer→comé, vivir→viví). Pronominal infinitives take
// the attached clitic without the accent (lavarse→lavate). ser is
// irregular (sé); monosyllabic results take no accent (dar→da); when no
// form can be derived the tú form is returned.
func VosImperative(infinitive, tuForm string) string {
	base := strings.ToLower(strings.TrimSpace(infinitive))
	pronominal := usage.HasSeSuffix(base)
	if pronominal {
		base = usage.StripSe(base)
	}
	if base == "ser" {
		return "sé"
	}

	stem, vowel, ok := splitInfinitive(base)
	if !ok || stem == "" {
		return tuForm
	}
	if pronominal {
		return stem + vowel + "te"
	}
	if !containsVowel(stem) {
		return stem + vowel
	}
	return stem + accented(vowel)
}

func normalize(infinitive string) string {
	base := strings.ToLower(strings.TrimSpace(infinitive))
	if usage.HasSeSuffix(base) {
		return usage.StripSe(base)
	}
	return base
}

// splitInfinitive separates a regular infinitive into its stem and
// theme vowel: hablar→(habl, a), comer→(com, e), vivir→(viv, i),
// oír→(o, i).
func splitInfinitive(base string) (stem, vowel string, ok bool) {
	switch {
	case strings.HasSuffix(base, "ar"):
		return strings.TrimSuffix(base, "ar"), "a", true
	case strings.HasSuffix(base, "er"):
		return strings.TrimSuffix(base, "er"), "e", true
	case strings.HasSuffix(base, "ir"):
		return strings.TrimSuffix(base, "ir"), "i", true
	case strings.HasSuffix(base, "ír"):
		return strings.TrimSuffix(base, "ír"), "i", true
	}
	return "", "", false
}

func cliticPrefix(form string) string {
	if strings.HasPrefix(form, "te ") {
		return "te "
	}
	return ""
}

func containsVowel(s string) bool {
	return strings.ContainsAny(s, "aeiouáéíóúü")
}

func accented(vowel string) string {
	switch vowel {
	case "a":
		return "á"
	case "e":
		return "é"
	case "i":
		return "í"
	}
	return vowel
}

func isPresentIndicative(c types.Conjugation) bool {
	mood := strings.ToLower(c.Mood)
	tense := strings.ToLower(c.Tense)
	return strings.HasPrefix(mood, "indicativ") && strings.HasPrefix(tense, "present")
}

func isAffirmativeImperative(c types.Conjugation) bool {
	mood := strings.ToLower(c.Mood)
	if !strings.Contains(mood, "imperativ") {
		return false
	}
	return strings.Contains(mood, "afirmativ") || strings.Contains(mood, "affirmative")
}
