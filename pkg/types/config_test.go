package types

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: "sqlite", DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "valid file config",
			config:  Config{Backend: "file", DataDir: "/tmp/data", Key: "todos"},
			wantErr: nil,
		},
		{
			name:    "memory needs no DataDir",
			config:  Config{Backend: "memory"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigSlotKey(t *testing.T) {
	if got := (Config{}).SlotKey(); got != DefaultKey {
		t.Errorf("SlotKey() = %q, want %q", got, DefaultKey)
	}
	if got := (Config{Key: "work"}).SlotKey(); got != "work" {
		t.Errorf("SlotKey() = %q, want %q", got, "work")
	}
}

func TestConfigStrictUsesValidateKey(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte("backend: file\nvalidate: true\n"), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !cfg.Strict {
		t.Errorf("Strict = false, want true from validate key")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	out, err := yaml.Marshal(&Config{Backend: BackendFile, Strict: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), "validate: true") {
		t.Errorf("marshaled config %q lacks validate key", out)
	}
}
