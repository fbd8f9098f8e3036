package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace the text of a todo",
		Long: `Edit replaces the text of one todo with the trimmed remaining arguments.
Blank text leaves the todo unchanged and is reported as an error.

Example:
  todo edit 1 Buy oat milk`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			t, err := resolveRef(store, args[0])
			if err != nil {
				return err
			}
			if !store.Edit(t.ID, strings.Join(args[1:], " ")) {
				return userError(errBlankText)
			}
			updated, _ := store.Get(t.ID)
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), updated)
			}
			printTodo(cmd.OutOrStdout(), "Edited", updated)
			return nil
		},
	}
}
