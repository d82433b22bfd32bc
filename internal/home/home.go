package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the verbena home directory.
	DefaultDirName = ".verbena"

	// DataDirName is the subdirectory for verb data files.
	DataDirName = "data"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Default data file names. The config file can rename any of them.
const (
	VerbsFileName     = "jehle_verb_database.json"
	LookupFileName    = "jehle_verb_lookup_index.json"
	FrequencyFileName = "verb_frequency_rank.json"
	TaxonomyFileName  = "se_verb_taxonomy.json"
	OverridesFileName = "user_taxonomy_overrides.json"
	UserDataFileName  = "user_data.json"
)

// Dir represents the verbena home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.verbena).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// DataPath returns the path to the data directory.
func (d *Dir) DataPath() string {
	return filepath.Join(d.path, DataDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// DataFile returns the path to a named data file. dirOverride, when set,
// replaces the default data directory.
func (d *Dir) DataFile(dirOverride, name string) string {
	base := d.DataPath()
	if dirOverride != "" {
		base = dirOverride
	}
	return filepath.Join(base, name)
}

// VerbsPath returns the default path of the verb database.
func (d *Dir) VerbsPath() string {
	return filepath.Join(d.DataPath(), VerbsFileName)
}

// LookupPath returns the default path of the infinitive lookup index.
func (d *Dir) LookupPath() string {
	return filepath.Join(d.DataPath(), LookupFileName)
}

// FrequencyPath returns the default path of the frequency ranking.
func (d *Dir) FrequencyPath() string {
	return filepath.Join(d.DataPath(), FrequencyFileName)
}

// TaxonomyPath returns the default path of the se-verb taxonomy.
func (d *Dir) TaxonomyPath() string {
	return filepath.Join(d.DataPath(), TaxonomyFileName)
}

// OverridesPath returns the default path of the user taxonomy overrides.
func (d *Dir) OverridesPath() string {
	return filepath.Join(d.DataPath(), OverridesFileName)
}

// UserDataPath returns the default path of the study data document.
func (d *Dir) UserDataPath() string {
	return filepath.Join(d.DataPath(), UserDataFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	// Create data directory (this also creates the parent)
	if err := os.MkdirAll(d.DataPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
