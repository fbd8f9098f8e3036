// Package memory provides a process-local Slot. It stands in for browser
// local storage in tests and for throwaway sessions, including its failure
// modes: a byte quota and a disabled switch.
package memory

import (
	"sync"

	"github.com/mesh-intelligence/todos/pkg/types"
)

var _ types.SlotCloser = (*Slot)(nil)

// Slot is an in-memory key-value store.
type Slot struct {
	mu       sync.Mutex
	data     map[string][]byte
	quota    int // max total bytes of keys and values; 0 is unlimited
	disabled bool
	closed   bool
	writes   int
}

// Option configures a Slot.
type Option func(*Slot)

// WithQuota limits the total size of stored keys and values in bytes.
func WithQuota(bytes int) Option {
	return func(s *Slot) {
		s.quota = bytes
	}
}

// WithValue seeds key with value.
func WithValue(key string, value []byte) Option {
	return func(s *Slot) {
		s.data[key] = append([]byte(nil), value...)
	}
}

// New creates an empty Slot.
func New(opts ...Option) *Slot {
	s := &Slot{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the value stored under key.
func (s *Slot) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLocked(key); err != nil {
		return nil, err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, types.ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
// Returns ErrQuotaExceeded if the write would push the slot over its quota;
// the previous value is kept.
func (s *Slot) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLocked(key); err != nil {
		return err
	}
	if s.quota > 0 {
		size := len(key) + len(value)
		for k, v := range s.data {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > s.quota {
			return types.ErrQuotaExceeded
		}
	}
	s.data[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// SetDisabled turns the slot off or on. A disabled slot fails every Get and
// Set with ErrSlotDisabled.
func (s *Slot) SetDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = disabled
}

// Writes returns the number of successful Set calls.
func (s *Slot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Close makes further calls fail with ErrSlotClosed. Idempotent.
func (s *Slot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Slot) checkLocked(key string) error {
	switch {
	case s.closed:
		return types.ErrSlotClosed
	case s.disabled:
		return types.ErrSlotDisabled
	case key == "":
		return types.ErrInvalidKey
	}
	return nil
}
