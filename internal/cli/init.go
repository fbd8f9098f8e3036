package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/todos/internal/paths"
	"github.com/mesh-intelligence/todos/pkg/slots"
	"github.com/mesh-intelligence/todos/pkg/types"
)

func (a *app) newInitCmd() *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: "Write a default config.yaml to the configuration directory if none exists,\n" +
			"then open the configured backend once so its data directory is ready.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, backend)
		},
	}
	cmd.Flags().StringVar(&backend, "backend", "", "backend written to a new config.yaml (file, sqlite, memory)")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, backend string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	cfg := a.cfg
	if backend != "" {
		cfg.Backend = backend
		if err := cfg.Validate(); err != nil {
			return userErrorf("backend %q: %w", backend, err)
		}
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}
	configPath := filepath.Join(configDir, configFileExt)
	written, err := writeConfigIfMissing(configPath, cfg)
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if !written && backend != "" {
		// An existing config.yaml wins over the flag.
		cfg = a.cfg
	}

	slot, err := slots.Open(cfg)
	if err != nil {
		return sysError(fmt.Errorf("initialize storage: %w", err))
	}
	if err := slot.Close(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintf(out, "Wrote %s\n", configPath)
	}
	fmt.Fprintf(out, "Initialized %s backend in %s\n", cfg.Backend, cfg.DataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether the file was written.
func writeConfigIfMissing(path string, cfg types.Config) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
