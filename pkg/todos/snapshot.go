package todos

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// errNotArray is returned by decodeSnapshot when the value is valid JSON but
// not an array.
var errNotArray = errors.New("snapshot is not a JSON array")

// encodeSnapshot serializes the collection. A nil collection encodes as [].
func encodeSnapshot(items []types.Todo) ([]byte, error) {
	if items == nil {
		items = []types.Todo{}
	}
	return json.Marshal(items)
}

// splitSnapshot parses data as a JSON array and returns its elements
// unparsed. JSON null is an empty array.
func splitSnapshot(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errNotArray
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("parsing snapshot: invalid JSON")
		}
		return nil, errNotArray
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return raw, nil
}

// decodeSnapshot parses a persisted collection. Elements are taken as-is:
// missing fields stay zero and no text or ID checks are applied. A field whose
// JSON type does not fit Todo is left zero, and an element that is not an
// object is skipped, so one damaged entry never costs the rest of the list.
func decodeSnapshot(data []byte) ([]types.Todo, error) {
	raw, err := splitSnapshot(data)
	if err != nil {
		return nil, err
	}
	items := make([]types.Todo, 0, len(raw))
	for _, r := range raw {
		if t, ok := decodeItem(r); ok {
			items = append(items, t)
		}
	}
	return items, nil
}

// decodeItem decodes one element field by field. It reports false when the
// element is not a JSON object.
func decodeItem(r json.RawMessage) (types.Todo, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r, &fields); err != nil || fields == nil {
		return types.Todo{}, false
	}
	var t types.Todo
	decodeField(fields, "id", &t.ID)
	decodeField(fields, "text", &t.Text)
	decodeField(fields, "completed", &t.Completed)
	decodeField(fields, "createdAt", &t.CreatedAt)
	return t, true
}

// decodeField unmarshals fields[name] into dst, leaving dst zero when the
// field is absent or has the wrong JSON type.
func decodeField[T any](fields map[string]json.RawMessage, name string, dst *T) {
	v, ok := fields[name]
	if !ok {
		return
	}
	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		return
	}
	*dst = out
}
