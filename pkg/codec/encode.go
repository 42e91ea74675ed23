package codec

import (
	"encoding/json"
	"fmt"
)

// Encode converts v into a plain JSON-compatible tree. Absent fields are omitted, local
// names are written under their wire alias and timestamps use TimeLayout.
func (s *Schema[T]) Encode(v *T) map[string]any {
	if v == nil {
		return nil
	}

	out := make(map[string]any, len(s.order))

	for _, name := range s.order {
		value, ok := s.fields[name].get(v)
		if !ok {
			continue
		}

		out[s.renames.Wire(name)] = value
	}

	return out
}

// Marshal encodes v as JSON text. A nil v encodes as null.
func Marshal[T any](v *T, schema *Schema[T]) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	data, err := json.Marshal(schema.Encode(v))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", schema.Name(), err)
	}

	return data, nil
}
