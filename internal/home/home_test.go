package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-verbena")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-verbena" {
			t.Errorf("expected path /tmp/test-verbena, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-verbena")

	t.Run("DataPath", func(t *testing.T) {
		expected := "/tmp/test-verbena/data"
		if dir.DataPath() != expected {
			t.Errorf("expected %s, got %s", expected, dir.DataPath())
		}
	})

	t.Run("ConfigPath", func(t *testing.T) {
		expected := "/tmp/test-verbena/config.yaml"
		if dir.ConfigPath() != expected {
			t.Errorf("expected %s, got %s", expected, dir.ConfigPath())
		}
	})

	t.Run("data file helpers", func(t *testing.T) {
		cases := []struct {
			got  string
			want string
		}{
			{dir.VerbsPath(), "/tmp/test-verbena/data/jehle_verb_database.json"},
			{dir.LookupPath(), "/tmp/test-verbena/data/jehle_verb_lookup_index.json"},
			{dir.FrequencyPath(), "/tmp/test-verbena/data/verb_frequency_rank.json"},
			{dir.TaxonomyPath(), "/tmp/test-verbena/data/se_verb_taxonomy.json"},
			{dir.OverridesPath(), "/tmp/test-verbena/data/user_taxonomy_overrides.json"},
			{dir.UserDataPath(), "/tmp/test-verbena/data/user_data.json"},
		}
		for _, c := range cases {
			if c.got != c.want {
				t.Errorf("expected %s, got %s", c.want, c.got)
			}
		}
	})

	t.Run("DataFile honors override", func(t *testing.T) {
		if got := dir.DataFile("", "verbs.json"); got != "/tmp/test-verbena/data/verbs.json" {
			t.Errorf("unexpected default join: %s", got)
		}
		if got := dir.DataFile("/srv/verbs", "verbs.json"); got != "/srv/verbs/verbs.json" {
			t.Errorf("unexpected override join: %s", got)
		}
	})
}

func TestDir_EnsureExists(t *testing.T) {
	// Use a temp directory
	tmpDir := t.TempDir()
	verbenaDir := filepath.Join(tmpDir, "verbena-test")

	dir, err := New(verbenaDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Directory shouldn't exist yet
	if dir.Exists() {
		t.Error("directory should not exist before EnsureExists")
	}

	// Create it
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	// Now it should exist
	if !dir.Exists() {
		t.Error("directory should exist after EnsureExists")
	}

	// Data directory should also exist
	if _, err := os.Stat(dir.DataPath()); os.IsNotExist(err) {
		t.Error("data directory should exist after EnsureExists")
	}
}

func TestDir_ConfigExists(t *testing.T) {
	tmpDir := t.TempDir()
	dir, _ := New(tmpDir)

	// Config doesn't exist
	if dir.ConfigExists() {
		t.Error("config should not exist initially")
	}

	// Create a config file
	configPath := dir.ConfigPath()
	if err := os.WriteFile(configPath, []byte("test: true\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Now it should exist
	if !dir.ConfigExists() {
		t.Error("config should exist after creation")
	}
}
