package cmdline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Properties is an ordered option-name -> default-value mapping fed to the
// defaults merge after the token pass. Order matters: the merge walks
// entries in insertion order and a flag default that fails the truthy check
// aborts the remaining walk.
type Properties struct {
	keys   []string
	values map[string]string
}

// NewProperties creates an empty defaults mapping.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

// Set records a default value for an option name. Re-setting an existing
// key overwrites the value but keeps its original position.
func (p *Properties) Set(key, value string) *Properties {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the default value recorded for key.
func (p *Properties) Get(key string) (string, bool) {
	value, ok := p.values[key]
	return value, ok
}

// Keys returns all keys in insertion order.
func (p *Properties) Keys() []string {
	return p.keys
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	return len(p.keys)
}

// isTruthy reports whether a flag-style default value marks the flag as
// present: yes, true or 1, case-insensitively.
func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

// LoadProperties reads a defaults file into a Properties mapping, keeping
// the file's key order. The format is chosen by extension: .json, or .yaml
// and .yml. Values must be scalars.
func LoadProperties(path string) (*Properties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSONProperties(data)
	case ".yaml", ".yml":
		return parseYAMLProperties(data)
	default:
		return nil, fmt.Errorf("unsupported defaults file format: %s", filepath.Ext(path))
	}
}

// parseJSONProperties walks the decoder token stream instead of
// unmarshalling into a map, so the file's key order survives.
func parseJSONProperties(data []byte) (*Properties, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid defaults JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("defaults JSON must be an object, got %v", tok)
	}

	props := NewProperties()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid defaults JSON: %w", err)
		}
		key := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid defaults JSON value for %q: %w", key, err)
		}
		str, err := scalarString(value)
		if err != nil {
			return nil, fmt.Errorf("defaults key %q: %w", key, err)
		}
		props.Set(key, str)
	}
	return props, nil
}

// parseYAMLProperties decodes into a yaml.Node, which preserves mapping
// order, rather than into a Go map.
func parseYAMLProperties(data []byte) (*Properties, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid defaults YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return NewProperties(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("defaults YAML must be a mapping")
	}

	props := NewProperties()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		value := root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("defaults key %q: value must be a scalar", key.Value)
		}
		props.Set(key.Value, value.Value)
	}
	return props, nil
}

func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("value must be a scalar, got %T", value)
	}
}
