package types

import (
	"errors"
	"io"
)

// DefaultKey is the slot key the todo collection is stored under.
const DefaultKey = "next-todo-list"

// Slot is a key-value persistence location. Values are opaque bytes; the
// store writes a JSON array of Todo.
type Slot interface {
	// Get returns the value stored under key.
	// Returns ErrSlotEmpty if nothing is stored under key.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
}

// SlotCloser is a Slot that holds resources released by Close.
type SlotCloser interface {
	Slot
	io.Closer
}

// Slot errors.
var (
	ErrSlotEmpty     = errors.New("slot is empty")
	ErrSlotClosed    = errors.New("slot is closed")
	ErrSlotDisabled  = errors.New("slot is disabled")
	ErrQuotaExceeded = errors.New("slot quota exceeded")
	ErrInvalidKey    = errors.New("invalid slot key")
)

// ErrInvalidFilter is returned by ParseFilter for unknown filter names.
var ErrInvalidFilter = errors.New("invalid filter")
