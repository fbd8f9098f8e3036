package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/tui"
)

func (a *app) newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive todo list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI(cmd)
		},
	}
}

func (a *app) runUI(cmd *cobra.Command) error {
	store, closeStore, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := tui.Run(store, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return sysError(err)
	}
	return nil
}
