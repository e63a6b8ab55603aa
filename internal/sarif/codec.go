package sarif

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// extras holds the members of a JSON object that have no typed field.
type extras map[string]json.RawMessage

// member is one typed field handed to encodeObject.
type member struct {
	key   string
	value any
	omit  bool
}

// decodeObject splits a JSON object into the typed destinations in known and
// returns whatever is left as raw members.
func decodeObject(data []byte, known map[string]any) (extras, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	var rest extras
	for key, raw := range all {
		dst, ok := known[key]
		if !ok {
			if rest == nil {
				rest = make(extras)
			}
			rest[key] = raw
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
	}
	return rest, nil
}

// takeString moves rest[key] into dst when it holds a JSON string and reports
// whether it did. Any other value is left in rest.
func takeString(rest extras, key string, dst *string) bool {
	raw, ok := rest[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false
	}
	delete(rest, key)
	return true
}

// encodeObject merges the raw members with the typed fields and encodes them as one object.
func encodeObject(rest extras, fields []member) ([]byte, error) {
	m := make(map[string]any, len(rest)+len(fields))
	for key, raw := range rest {
		m[key] = raw
	}
	for _, f := range fields {
		if f.omit {
			continue
		}
		m[f.key] = f.value
	}
	return encodeNoEscape(m)
}

// encodeNoEscape encodes v without HTML escaping and without the trailing newline.
func encodeNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
