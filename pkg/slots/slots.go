// Package slots opens the persistence slot described by a types.Config while
// keeping the backend implementations internal.
package slots

import (
	"fmt"

	"github.com/mesh-intelligence/todos/internal/filestore"
	"github.com/mesh-intelligence/todos/internal/memory"
	"github.com/mesh-intelligence/todos/internal/sqlite"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Open validates cfg and opens the selected backend. The caller must Close
// the returned slot.
//
// Example:
//
//	slot, err := slots.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".todos-db",
//	})
//	defer slot.Close()
func Open(cfg types.Config) (types.SlotCloser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		b := sqlite.NewBackend()
		if err := b.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attach sqlite: %w", err)
		}
		return b, nil
	case types.BackendFile:
		s, err := filestore.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file slot: %w", err)
		}
		return s, nil
	case types.BackendMemory:
		return memory.New(), nil
	default:
		return nil, types.ErrBackendUnknown
	}
}
