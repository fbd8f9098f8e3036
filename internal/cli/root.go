// Package cli implements the todo command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/todos/internal/paths"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app carries the state shared by one invocation of the root command.
type app struct {
	flags rootFlags
	cfg   types.Config
	log   *zap.Logger
}

// NewRootCmd creates the top-level "todo" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "todo",
		Short: "A small todo list manager",
		Long: "todo keeps a single todo list in a persistence slot.\n" +
			"Run without a subcommand to open the interactive list.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log persistence details to stderr")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newAddCmd(),
		a.newListCmd(),
		a.newToggleCmd(),
		a.newEditCmd(),
		a.newRemoveCmd(),
		a.newClearCmd(),
		a.newUICmd(),
	)
	return root
}

// setup resolves configuration and builds the logger for the invocation.
func (a *app) setup(stderr io.Writer) error {
	a.log = newLogger(stderr, a.flags.verbose)

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("config %s: backend %q: %w", configDir, cfg.Backend, err))
	}
	a.cfg = cfg
	a.log.Debug("configuration resolved",
		zap.String("config_dir", configDir),
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir),
		zap.String("key", cfg.SlotKey()))
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "todo:", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
