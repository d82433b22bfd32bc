package conjugation

import (
	"testing"

	"github.com/jackzampolin/verbena/internal/types"
)

func TestVosPresent(t *testing.T) {
	tests := []struct {
		infinitive string
		tuForm     string
		want       string
	}{
		{"hablar", "hablas", "hablás"},
		{"comer", "comes", "comés"},
		{"vivir", "vives", "vivís"},
		{"oír", "oyes", "oís"},
		{"estar", "estás", "estás"},
		{"ser", "eres", "sos"},
		{"ir", "vas", "vas"},
		{"dar", "das", "das"},
		{"ver", "ves", "ves"},
		{"lavarse", "te lavas", "te lavás"},
		{"ponerse", "te pones", "te ponés"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.infinitive, func(t *testing.T) {
			if got := VosPresent(tt.infinitive, tt.tuForm); got != tt.want {
				t.Errorf("VosPresent(%q, %q) = %q, want %q", tt.infinitive, tt.tuForm, got, tt.want)
			}
		})
	}
}

func TestVosImperative(t *testing.T) {
	tests := []struct {
		infinitive string
		tuForm     string
		want       string
	}{
		{"hablar", "habla", "hablá"},
		{"comer", "come", "comé"},
		{"vivir", "vive", "viví"},
		{"oír", "oye", "oí"},
		{"decir", "di", "decí"},
		{"ser", "sé", "sé"},
		{"ir", "ve", "ve"},
		{"dar", "da", "da"},
		{"ver", "ve", "ve"},
		{"lavarse", "lávate", "lavate"},
		{"ponerse", "ponte", "ponete"},
		{"irse", "vete", "vete"},
	}

	for _, tt := range tests {
		t.Run(tt.infinitive, func(t *testing.T) {
			if got := VosImperative(tt.infinitive, tt.tuForm); got != tt.want {
				t.Errorf("VosImperative(%q, %q) = %q, want %q", tt.infinitive, tt.tuForm, got, tt.want)
			}
		})
	}
}

func sampleVerb() types.Verb {
	return types.Verb{
		Infinitive: "hablar",
		Conjugations: []types.Conjugation{
			{
				Mood:  "Indicativo",
				Tense: "Presente",
				Forms: map[string]string{
					"yo":                  "hablo",
					"tú":                  "hablas",
					"él/ella/usted":       "habla",
					"nosotros/nosotras":   "hablamos",
					"vosotros/vosotras":   "habláis",
					"ellos/ellas/ustedes": "hablan",
				},
			},
			{
				Mood:  "Indicativo",
				Tense: "Pretérito",
				Forms: map[string]string{
					"yo": "hablé",
					"tú": "hablaste",
				},
			},
			{
				Mood:  "Imperativo Afirmativo",
				Tense: "Presente",
				Forms: map[string]string{
					"tú": "habla",
				},
			},
		},
	}
}

func TestBuildTableColumns(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "full paradigm",
			opts: Options{Voseo: true, Vosotros: true},
			want: []string{"yo", "tú", "vos", "él/ella/usted", "nosotros/nosotras", "vosotros/vosotras", "ellos/ellas/ustedes"},
		},
		{
			name: "no voseo",
			opts: Options{Vosotros: true},
			want: []string{"yo", "tú", "él/ella/usted", "nosotros/nosotras", "vosotros/vosotras", "ellos/ellas/ustedes"},
		},
		{
			name: "no vosotros",
			opts: Options{Voseo: true},
			want: []string{"yo", "tú", "vos", "él/ella/usted", "nosotros/nosotras", "ellos/ellas/ustedes"},
		},
		{
			name: "neither",
			opts: Options{},
			want: []string{"yo", "tú", "él/ella/usted", "nosotros/nosotras", "ellos/ellas/ustedes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := BuildTable(sampleVerb(), tt.opts)
			if len(table.Persons) != len(tt.want) {
				t.Fatalf("Persons = %v, want %v", table.Persons, tt.want)
			}
			for i := range tt.want {
				if table.Persons[i] != tt.want[i] {
					t.Fatalf("Persons = %v, want %v", table.Persons, tt.want)
				}
			}
			for _, row := range table.Rows {
				if len(row.Forms) != len(table.Persons) {
					t.Errorf("row %s/%s has %d forms for %d persons", row.Mood, row.Tense, len(row.Forms), len(table.Persons))
				}
			}
		})
	}
}

func TestBuildTableVosForms(t *testing.T) {
	table := BuildTable(sampleVerb(), Options{Voseo: true, Vosotros: true})
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows", len(table.Rows))
	}

	vosIdx := -1
	for i, p := range table.Persons {
		if p == "vos" {
			vosIdx = i
		}
	}
	if vosIdx != 2 {
		t.Fatalf("vos column at %d, want 2 (after tú)", vosIdx)
	}

	if got := table.Rows[0].Forms[vosIdx]; got != "hablás" {
		t.Errorf("present vos = %q, want hablás", got)
	}
	// Tenses without a distinct voseo form carry the tú form.
	if got := table.Rows[1].Forms[vosIdx]; got != "hablaste" {
		t.Errorf("pretérito vos = %q, want hablaste", got)
	}
	if got := table.Rows[2].Forms[vosIdx]; got != "hablá" {
		t.Errorf("imperative vos = %q, want hablá", got)
	}
}

func TestBuildTableMissingForms(t *testing.T) {
	verb := types.Verb{
		Infinitive: "soler",
		Conjugations: []types.Conjugation{
			{Mood: "Indicativo", Tense: "Presente", Forms: map[string]string{"yo": "suelo"}},
		},
	}
	table := BuildTable(verb, Options{Vosotros: true})

	row := table.Rows[0]
	if row.Forms[0] != "suelo" {
		t.Errorf("yo form = %q", row.Forms[0])
	}
	for i := 1; i < len(row.Forms); i++ {
		if row.Forms[i] != "" {
			t.Errorf("person %s = %q, want empty", table.Persons[i], row.Forms[i])
		}
	}
}

func TestBuildTablePronominal(t *testing.T) {
	verb := types.Verb{
		Infinitive: "lavarse",
		Conjugations: []types.Conjugation{
			{
				Mood:  "Indicativo",
				Tense: "Presente",
				Forms: map[string]string{"yo": "me lavo", "tú": "te lavas"},
			},
			{
				Mood:  "Imperativo Afirmativo",
				Tense: "Presente",
				Forms: map[string]string{"tú": "lávate"},
			},
		},
	}
	table := BuildTable(verb, Options{Voseo: true})

	if got := table.Rows[0].Forms[2]; got != "te lavás" {
		t.Errorf("present vos = %q, want te lavás", got)
	}
	if got := table.Rows[1].Forms[2]; got != "lavate" {
		t.Errorf("imperative vos = %q, want lavate", got)
	}
}
