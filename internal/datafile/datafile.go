// Package datafile decodes the static persona and style documents.
package datafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// FormatError reports a data source that is missing, unreadable or structurally invalid.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid data file %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Errorf builds a FormatError for path with a formatted cause.
func Errorf(path, format string, args ...any) *FormatError {
	return &FormatError{Path: path, Err: fmt.Errorf(format, args...)}
}

// IsYAML reports whether path should be decoded as YAML.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Decode reads path and decodes it into v. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func Decode(path string, v any) error {
	data, err := Read(path)
	if err != nil {
		return err
	}

	if err := Unmarshal(path, data, v); err != nil {
		return err
	}

	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Decoded data file")
	return nil
}

// Read returns the contents of path, wrapping failures in a FormatError.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return data, nil
}

// MissingKey returns the first of keys absent from record.
func MissingKey(record map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if _, ok := record[key]; !ok {
			return key, true
		}
	}
	return "", false
}

// Keys returns the top-level mapping keys of data in source order.
func Keys(path string, data []byte) ([]string, error) {
	if IsYAML(path) {
		return yamlKeys(path, data)
	}
	return jsonKeys(path, data)
}

func yamlKeys(path string, data []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Path: path, Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, Errorf(path, "expected a mapping at the top level")
	}

	root := doc.Content[0]
	keys := make([]string, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	return keys, nil
}

func jsonKeys(path string, data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, &FormatError{Path: path, Err: fmt.Errorf("failed to parse JSON: %w", err)}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, Errorf(path, "expected a mapping at the top level")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &FormatError{Path: path, Err: fmt.Errorf("failed to parse JSON: %w", err)}
		}
		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, &FormatError{Path: path, Err: fmt.Errorf("failed to parse JSON: %w", err)}
		}
	}
	return keys, nil
}

// Unmarshal decodes data using the format implied by path.
func Unmarshal(path string, data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return Errorf(path, "file is empty")
	}

	if IsYAML(path) {
		if err := yaml.Unmarshal(data, v); err != nil {
			return &FormatError{Path: path, Err: fmt.Errorf("failed to parse YAML: %w", err)}
		}
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &FormatError{Path: path, Err: fmt.Errorf("failed to parse JSON: %w", err)}
	}
	return nil
}
