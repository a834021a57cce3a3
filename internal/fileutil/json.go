package fileutil

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes v as two-space indented JSON without HTML escaping,
// terminated by a newline. Map keys come out sorted.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
