package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/pkg/types"
)

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>...",
		Aliases: []string{"delete", "remove"},
		Short:   "Delete todos",
		Long: `Rm deletes todos from the list. Refs are resolved before anything is
deleted, so "todo rm 1 2" removes the first two rows of "todo list".`,
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

			removed := make([]types.Todo, 0, len(targets))
			for _, t := range targets {
				if store.Remove(t.ID) {
					removed = append(removed, t)
				}
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), removed)
			}
			for _, t := range removed {
				printTodo(cmd.OutOrStdout(), "Removed", t)
			}
			return nil
		},
	}
}
