package api

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputTo(t *testing.T) {
	data := map[string]any{"infinitive": "hablar", "rank": 14}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatalf("OutputTo() error = %v", err)
		}
		if !strings.Contains(buf.String(), `"infinitive": "hablar"`) {
			t.Errorf("unexpected JSON output: %s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatalf("OutputTo() error = %v", err)
		}
		if !strings.Contains(buf.String(), "infinitive: hablar") {
			t.Errorf("unexpected YAML output: %s", buf.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormat("toml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestOutputToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	data := map[string]any{"favourites": []string{"hablar", "irse"}}

	if err := OutputToFile(path, OutputFormatJSON, data); err != nil {
		t.Fatalf("OutputToFile() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if !strings.Contains(string(content), `"hablar"`) {
		t.Errorf("unexpected file content: %s", content)
	}
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")

	SetOutputFormat("json")
	if GetOutputFormat() != OutputFormatJSON {
		t.Error("expected json format")
	}

	SetOutputFormat("yaml")
	if GetOutputFormat() != OutputFormatYAML {
		t.Error("expected yaml format")
	}

	SetOutputFormat("bogus")
	if GetOutputFormat() != DefaultOutput {
		t.Error("expected fallback to default format")
	}
}
