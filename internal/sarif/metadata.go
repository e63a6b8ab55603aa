package sarif

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidMetadata is returned when a metadata file is not a mapping.
var ErrInvalidMetadata = errors.New("metadata must be a key/value mapping")

// LoadMetadata reads an optional metadata file. An empty path or a path that
// does not exist yields a nil map and no error. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON.
func LoadMetadata(path string) (map[string]json.RawMessage, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLMetadata(data)
	default:
		return parseJSONMetadata(data)
	}
}

func parseJSONMetadata(data []byte) (map[string]json.RawMessage, error) {
	var meta map[string]json.RawMessage
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	return meta, nil
}

func parseYAMLMetadata(data []byte) (map[string]json.RawMessage, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	if values == nil {
		return nil, nil
	}
	meta := make(map[string]json.RawMessage, len(values))
	for key, v := range values {
		raw, err := encodeNoEscape(v)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", key, err)
		}
		meta[key] = raw
	}
	return meta, nil
}
