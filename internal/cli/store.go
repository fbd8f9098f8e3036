package cli

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/todos/pkg/slots"
	"github.com/mesh-intelligence/todos/pkg/todos"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// openStore opens the configured slot and returns a loaded store. The caller
// must call the returned close function.
func (a *app) openStore() (*todos.Store, func(), error) {
	slot, err := slots.Open(a.cfg)
	if err != nil {
		return nil, nil, sysError(fmt.Errorf("open %s backend: %w", a.cfg.Backend, err))
	}

	store := todos.New(slot,
		todos.WithKey(a.cfg.SlotKey()),
		todos.WithLogger(a.log.Named("store")),
		todos.WithValidation(a.cfg.Strict),
	)
	store.Load()

	closeFn := func() {
		store.Close()
		if err := slot.Close(); err != nil {
			a.log.Warn("closing slot", zap.String("backend", a.cfg.Backend), zap.Error(err))
		}
	}
	return store, closeFn, nil
}

// resolveRef finds the todo ref points at. A ref is a 1-based position in
// the full list (as printed by list), an exact ID, or a unique ID prefix.
func resolveRef(store *todos.Store, ref string) (types.Todo, error) {
	ref = strings.TrimSpace(ref)
	items := store.Items()

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return types.Todo{}, userErrorf("%w: %d (have %d)", errOutOfRange, n, len(items))
		}
		return items[n-1], nil
	}

	if t, ok := store.Get(ref); ok {
		return t, nil
	}

	var matches []types.Todo
	if ref != "" {
		for _, t := range items {
			if strings.HasPrefix(t.ID, ref) {
				matches = append(matches, t)
			}
		}
	}
	switch len(matches) {
	case 0:
		return types.Todo{}, userErrorf("%w %q", errNoMatch, ref)
	case 1:
		return matches[0], nil
	default:
		return types.Todo{}, userErrorf("%w %q matches %d todos", errAmbiguous, ref, len(matches))
	}
}
