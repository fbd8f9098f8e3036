// Package filestore implements a Slot that keeps each key in its own JSON
// file under a data directory. Writes are atomic: a reader sees either the
// previous value or the new one, never a torn file.
package filestore

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/todos/pkg/types"
)

var _ types.SlotCloser = (*Slot)(nil)

// fileExt is appended to the escaped key to form the file name.
const fileExt = ".json"

// Slot stores values as files in a directory.
type Slot struct {
	mu     sync.RWMutex
	dir    string
	closed bool
}

// Open creates dir if needed and returns a Slot rooted there.
func Open(dir string) (*Slot, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Slot{dir: dir}, nil
}

// Dir returns the directory the slot writes to.
func (s *Slot) Dir() string {
	return s.dir
}

// Path returns the file that holds key.
func (s *Slot) Path(key string) (string, error) {
	if key == "" {
		return "", types.ErrInvalidKey
	}
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt), nil
}

// Get reads the file for key. Returns ErrSlotEmpty if it does not exist.
func (s *Slot) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrSlotClosed
	}
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.ErrSlotEmpty
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Set atomically replaces the file for key with value.
func (s *Slot) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrSlotClosed
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	return writeAtomic(path, value)
}

// Close makes further calls fail with ErrSlotClosed. Idempotent.
func (s *Slot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
