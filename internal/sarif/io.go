package sarif

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidSARIF is returned when the input is not a JSON object shaped like a SARIF log.
var ErrInvalidSARIF = errors.New("invalid SARIF format")

// Parse decodes a SARIF document from bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSARIF, err)
	}
	return &doc, nil
}

// Load reads and decodes the SARIF document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SARIF file: %w", err)
	}
	return Parse(data)
}

// Marshal encodes a document with two-space indentation and no HTML escaping.
func Marshal(doc *Document) ([]byte, error) {
	return MarshalIndent(doc)
}

// MarshalIndent encodes any value the same way Marshal encodes a document.
// It is shared by the summary writer so both outputs follow one convention.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}
