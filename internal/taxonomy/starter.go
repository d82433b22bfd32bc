package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed starter.json
var starterJSON []byte

// StarterDocument returns the embedded starter taxonomy document bytes.
func StarterDocument() []byte {
	out := make([]byte, len(starterJSON))
	copy(out, starterJSON)
	return out
}

// WriteStarter writes the embedded starter document to path, creating
// parent directories as needed. Callers decide whether an existing
// file should be preserved.
func WriteStarter(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(path, starterJSON, 0o644); err != nil {
		return fmt.Errorf("failed to write starter taxonomy: %w", err)
	}
	return nil
}
