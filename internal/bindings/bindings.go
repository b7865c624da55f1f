// Package bindings loads activation input files for the CLI. A
// bindings file maps variable names to host-native data which the
// type adapter converts on demand; a reserved "__unknown__" key lists
// attribute patterns a partial activation should treat as unknown.
package bindings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// UnknownsKey is the reserved top-level key declaring unknown
// attribute patterns, e.g. ["headers.auth.*"].
const UnknownsKey = "__unknown__"

// Input is the decoded content of a bindings file.
type Input struct {
	// Variables maps names to host-native data.
	Variables map[string]any

	// UnknownPatterns holds the declared unknown attribute patterns
	// in their dotted string form.
	UnknownPatterns []string
}

// Load reads and decodes a bindings file. The format follows the file
// extension: .json is parsed with gjson, .yaml/.yml with go-yaml.
func Load(path string) (*Input, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bindings file %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(content)
	case ".yaml", ".yml":
		return decodeYAML(content)
	}
	return nil, fmt.Errorf("unsupported bindings format %q: want .json, .yaml, or .yml", filepath.Ext(path))
}

func decodeJSON(content []byte) (*Input, error) {
	if !gjson.ValidBytes(content) {
		return nil, fmt.Errorf("invalid JSON in bindings file")
	}
	parsed := gjson.ParseBytes(content)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("bindings file must hold a JSON object at the top level")
	}
	vars, ok := parsed.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("bindings file must hold a JSON object at the top level")
	}
	return splitUnknowns(vars)
}

func decodeYAML(content []byte) (*Input, error) {
	var vars map[string]any
	if err := yaml.Unmarshal(content, &vars); err != nil {
		return nil, fmt.Errorf("invalid YAML in bindings file: %w", err)
	}
	return splitUnknowns(vars)
}

// splitUnknowns separates the reserved unknown-pattern list from the
// variable bindings.
func splitUnknowns(vars map[string]any) (*Input, error) {
	in := &Input{Variables: vars}
	raw, found := vars[UnknownsKey]
	if !found {
		return in, nil
	}
	delete(vars, UnknownsKey)
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a list of attribute pattern strings", UnknownsKey)
	}
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s entries must be strings, got %T", UnknownsKey, item)
		}
		in.UnknownPatterns = append(in.UnknownPatterns, s)
	}
	return in, nil
}
