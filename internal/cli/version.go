package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/mesh-intelligence/todos"

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the todo version",
		Args:  cobra.NoArgs,
		// Skip config resolution.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "todo %s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
