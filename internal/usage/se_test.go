package usage

import "testing"

func TestSeSuffixHelpers(t *testing.T) {
	tests := []struct {
		form      string
		hasSuffix bool
		stripped  string
	}{
		{"lavarse", true, "lavar"},
		{"irse", true, "ir"},
		{"hacerse", true, "hacer"},
		{"hablar", false, "hablar"},
		{"coser", false, "coser"},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.form, func(t *testing.T) {
			if got := HasSeSuffix(tt.form); got != tt.hasSuffix {
				t.Errorf("HasSeSuffix(%q) = %v, want %v", tt.form, got, tt.hasSuffix)
			}
			if got := StripSe(tt.form); got != tt.stripped {
				t.Errorf("StripSe(%q) = %q, want %q", tt.form, got, tt.stripped)
			}
		})
	}
}

func TestAppendSe(t *testing.T) {
	if got := AppendSe("lavar"); got != "lavarse" {
		t.Errorf("AppendSe(lavar) = %q", got)
	}
	if got := StripSe(AppendSe("hacer")); got != "hacer" {
		t.Errorf("append then strip should round-trip, got %q", got)
	}
}
