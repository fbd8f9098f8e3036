package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every completed todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			n := store.ClearCompleted()
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]int{
					"cleared":   n,
					"remaining": store.Remaining(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed\n", n)
			return nil
		},
	}
}
