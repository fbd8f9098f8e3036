package types

import "errors"

// Config selects and parameterizes the slot backend.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	Key     string `json:"key" yaml:"key"`
	Strict  bool   `json:"validate" yaml:"validate"` // Schema-check todos on load.
}

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendSQLite: true,
	BackendMemory: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// SlotKey returns Key, or DefaultKey when Key is empty.
func (c Config) SlotKey() string {
	if c.Key == "" {
		return DefaultKey
	}
	return c.Key
}
