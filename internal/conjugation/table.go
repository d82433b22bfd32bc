// Package conjugation shapes a verb's conjugation rows into display
// tables, optionally deriving voseo forms and dropping the vosotros
// column.
package conjugation

import (
	"github.com/jackzampolin/verbena/internal/types"
)

// PersonOrder lists the conjugation persons in display order. The
// keys match the person names used by the verb database.
var PersonOrder = []string{
	"yo",
	"tú",
	"él/ella/usted",
	"nosotros/nosotras",
	"vosotros/vosotras",
	"ellos/ellas/ustedes",
}

const (
	personTu       = "tú"
	personVos      = "vos"
	personVosotros = "vosotros/vosotras"
)

// Options selects which person columns a table carries.
type Options struct {
	Voseo    bool `json:"voseo"`
	Vosotros bool `json:"vosotros"`
}

// Row is one mood/tense line with forms aligned to Table.Persons.
type Row struct {
	Mood        string   `json:"mood"`
	Tense       string   `json:"tense"`
	VerbEnglish string   `json:"verb_english,omitempty"`
	Forms       []string `json:"forms"`
}

// Table is a verb's full conjugation display table.
type Table struct {
	Infinitive string   `json:"infinitive"`
	Persons    []string `json:"persons"`
	Rows       []Row    `json:"rows"`
}

// BuildTable shapes the verb's conjugations into a table. With
// Options.Voseo a vos column appears after tú, carrying derived forms
// for the present indicative and the affirmative imperative and the tú
// form everywhere else, which is the correct voseo paradigm for the
// remaining tenses. Missing persons render as empty cells.
func BuildTable(verb types.Verb, opts Options) Table {
	persons := columns(opts)
	table := Table{Infinitive: verb.Infinitive, Persons: persons}

	for _, c := range verb.Conjugations {
		row := Row{
			Mood:        c.Mood,
			Tense:       c.Tense,
			VerbEnglish: c.VerbEnglish,
			Forms:       make([]string, len(persons)),
		}
		for i, person := range persons {
			if person == personVos {
				row.Forms[i] = vosForm(verb.Infinitive, c)
				continue
			}
			row.Forms[i] = c.Forms[person]
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func columns(opts Options) []string {
	out := make([]string, 0, len(PersonOrder)+1)
	for _, person := range PersonOrder {
		if person == personVosotros && !opts.Vosotros {
			continue
		}
		out = append(out, person)
		if person == personTu && opts.Voseo {
			out = append(out, personVos)
		}
	}
	return out
}

func vosForm(infinitive string, c types.Conjugation) string {
	tu := c.Forms[personTu]
	switch {
	case isPresentIndicative(c):
		return VosPresent(infinitive, tu)
	case isAffirmativeImperative(c):
		return VosImperative(infinitive, tu)
	}
	return tu
}
