// Package paths resolves where the todo CLI keeps its configuration and its
// persisted lists.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory created under the platform config and data roots.
const appDirName = "todos"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TODOS_CONFIG_DIR"
	EnvDataDir   = "TODOS_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/todos (fallback ~/.config/todos)
// macOS:   ~/Library/Application Support/todos
// Windows: %APPDATA%/todos
func DefaultConfigDir() (string, error) {
	return platformPath("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/todos (fallback ~/.local/share/todos)
// macOS:   ~/Library/Application Support/todos
// Windows: %APPDATA%/todos
func DefaultDataDir() (string, error) {
	return platformPath("XDG_DATA_HOME", ".local", "share")
}

// platformPath applies the XDG lookup on Linux and os.UserConfigDir elsewhere.
func platformPath(xdgEnv string, homeFallback ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeFallback...)
	return filepath.Join(append(parts, appDirName)...), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > TODOS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configValue (data_dir in config.yaml) > TODOS_DATA_DIR env >
// DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}
