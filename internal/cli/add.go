package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo to the top of the list",
		Long: `Add joins its arguments with spaces, trims the result, and adds it as a new
incomplete todo at the top of the list. Blank text is rejected.

Example:
  todo add Buy milk
  todo add "Walk the dog"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			t, ok := store.Add(strings.Join(args, " "))
			if !ok {
				return userError(errBlankText)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), t)
			}
			printTodo(cmd.OutOrStdout(), "Added", t)
			return nil
		},
	}
}
