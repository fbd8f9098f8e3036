package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/pkg/todos"
	"github.com/mesh-intelligence/todos/pkg/types"
)

func (a *app) newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <ref>...",
		Aliases: []string{"done"},
		Short:   "Flip the completed state of todos",
		Long: `Toggle marks incomplete todos completed and completed todos incomplete.
A ref is a position from "todo list", a todo ID, or a unique ID prefix.

Example:
  todo toggle 1
  todo toggle 2 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			targets, err := resolveRefs(store, args)
			if err != nil {
				return err
			}

			var changed []types.Todo
			for _, t := range targets {
				if !store.Toggle(t.ID) {
					continue
				}
				if updated, ok := store.Get(t.ID); ok {
					changed = append(changed, updated)
				}
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), changed)
			}
			for _, t := range changed {
				verb := "Reopened"
				if t.Completed {
					verb = "Completed"
				}
				printTodo(cmd.OutOrStdout(), verb, t)
			}
			return nil
		},
	}
}

// resolveRefs resolves every ref before anything is changed, so positions
// refer to the list as it was when the command started. Duplicate refs to the
// same todo collapse to one.
func resolveRefs(store *todos.Store, refs []string) ([]types.Todo, error) {
	seen := make(map[string]bool, len(refs))
	out := make([]types.Todo, 0, len(refs))
	for _, ref := range refs {
		t, err := resolveRef(store, ref)
		if err != nil {
			return nil, err
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}
