package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/pkg/types"
)

func (a *app) newListCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos",
		Long: `List prints the todos selected by --filter, newest first, followed by the
number of todos not yet completed. The # column is the position accepted by
toggle, edit and rm.

Example:
  todo list
  todo list --filter active
  todo list --filter completed --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := types.ParseFilter(filter)
			if err != nil {
				return userErrorf("%w %q (valid: all, active, completed)", err, filter)
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			store.SetFilter(f)
			snap := store.Snapshot()
			out := cmd.OutOrStdout()

			if a.flags.jsonMode {
				return printJSON(out, listOutput{
					Filter:    snap.Filter,
					Remaining: snap.Remaining,
					Total:     snap.Total,
					Todos:     snap.Visible,
				})
			}

			if len(snap.Visible) == 0 {
				fmt.Fprintln(out, emptyMessage(f))
			} else if err := printTable(out, snap.Visible, store.Items()); err != nil {
				return sysError(err)
			}
			fmt.Fprintln(out, remainingLine(snap.Remaining))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(types.FilterAll), "which todos to show: all, active, completed")
	return cmd
}

// emptyMessage is printed instead of the table when no todo matches f.
func emptyMessage(f types.Filter) string {
	if f == types.FilterAll {
		return "No todos."
	}
	return fmt.Sprintf("No %s todos.", f)
}
