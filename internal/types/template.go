package types

import (
	"encoding/json"
	"strings"
)

// Template is a practice-prompt template. Prompt bodies may be authored
// either as a single string or as a list of lines; decoding normalizes
// both to a single newline-joined string. Any other shape degrades to an
// empty prompt rather than failing the containing document.
type Template struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// UnmarshalJSON accepts {"name": ..., "prompt": <string|[]string>}.
// Non-object template values decode to the zero Template.
func (t *Template) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string          `json:"name"`
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Template{}
		return nil
	}
	t.Name = raw.Name
	t.Prompt = normalizePrompt(raw.Prompt)
	return nil
}

func normalizePrompt(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "\n")
	}

	return ""
}
