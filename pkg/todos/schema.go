package todos

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/todos/pkg/types"
)

//go:embed todo.schema.json
var todoSchemaJSON string

// todoSchema validates a single persisted todo.
var todoSchema = jsonschema.MustCompileString("todo.schema.json", todoSchemaJSON)

// validateItem checks one snapshot element against todoSchema.
func validateItem(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decoding item: %w", err)
	}
	if err := todoSchema.Validate(v); err != nil {
		return err
	}
	return nil
}

// decodeSnapshotStrict parses a persisted collection, dropping elements that
// fail schema validation and elements whose ID repeats an earlier one.
// It fails only when data is not a JSON array.
func decodeSnapshotStrict(data []byte, log *zap.Logger) ([]types.Todo, error) {
	raw, err := splitSnapshot(data)
	if err != nil {
		return nil, err
	}
	items := make([]types.Todo, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		if err := validateItem(r); err != nil {
			log.Debug("dropping invalid todo", zap.Int("index", i), zap.Error(err))
			continue
		}
		var t types.Todo
		if err := json.Unmarshal(r, &t); err != nil {
			log.Debug("dropping invalid todo", zap.Int("index", i), zap.Error(err))
			continue
		}
		if seen[t.ID] {
			log.Debug("dropping duplicate todo", zap.Int("index", i), zap.String("id", t.ID))
			continue
		}
		seen[t.ID] = true
		items = append(items, t)
	}
	return items, nil
}
