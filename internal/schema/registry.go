// Package schema embeds and compiles the JSON Schemas that guard the
// data files. Loaders validate decoded entries against these schemas
// before trusting them, skipping whatever does not conform.
package schema

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names, matching the files under schemas/.
const (
	VerbEntry        = "verb_entry"
	OverrideEntry    = "override_entry"
	TaxonomyDocument = "taxonomy_document"
	UserDataDocument = "user_data_document"
)

var compiled map[string]*jsonschema.Schema

func init() {
	var err error
	compiled, err = compileAll()
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
}

func compileAll() (map[string]*jsonschema.Schema, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	for _, entry := range entries {
		data, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		if err := compiler.AddResource(entry.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}
	}

	out := make(map[string]*jsonschema.Schema, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		s, err := compiler.Compile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s: %w", entry.Name(), err)
		}
		out[name] = s
	}
	return out, nil
}

// Validate checks a decoded JSON value against the named schema.
// The value must come from json.Unmarshal into any, not a typed struct.
func Validate(name string, v any) error {
	s, ok := compiled[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Names returns the registered schema names in sorted order.
func Names() []string {
	names := make([]string, 0, len(compiled))
	for name := range compiled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
