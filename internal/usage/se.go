// Package usage classifies verbs into se types and merges taxonomy
// membership with override entries into the usage record attached to a
// verb. Classification and merging are pure functions of a taxonomy
// snapshot and an override map, so they are safe to call concurrently.
package usage

import "strings"

// The pronominal "-se" suffix heuristics live here and nowhere else.
// Everything that relates a base infinitive to a derived pronominal
// spelling goes through these helpers.

const seSuffix = "se"

// HasSeSuffix reports whether form ends in the pronominal suffix.
func HasSeSuffix(form string) bool {
	return strings.HasSuffix(form, seSuffix)
}

// StripSe removes a trailing pronominal suffix, returning the form
// unchanged when it does not carry one.
func StripSe(form string) string {
	if HasSeSuffix(form) {
		return form[:len(form)-len(seSuffix)]
	}
	return form
}

// AppendSe derives the pronominal spelling of a base infinitive.
func AppendSe(base string) string {
	return base + seSuffix
}
