// Package sqlite implements the SQLite slot backend. Each slot key is one row
// in the slots table of <DataDir>/todos.db.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// DBFileName is the database file created inside DataDir.
const DBFileName = "todos.db"

var _ types.SlotCloser = (*Backend)(nil)

// Backend is a Slot stored in a SQLite database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (creating if needed) the database in config.DataDir and
// applies the schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. After Detach, Get and Set return
// ErrSlotClosed. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// Close is Detach, so a Backend satisfies io.Closer.
func (b *Backend) Close() error {
	return b.Detach()
}

// Get returns the value stored under key.
// Returns ErrSlotEmpty if no row exists for key.
func (b *Backend) Get(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrSlotClosed
	}
	if key == "" {
		return nil, types.ErrInvalidKey
	}

	var value []byte
	err := b.db.QueryRow(selectSlot, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrSlotEmpty
		}
		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces the row for key.
func (b *Backend) Set(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrSlotClosed
	}
	if key == "" {
		return types.ErrInvalidKey
	}
	updatedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := b.db.Exec(upsertSlot, key, string(value), updatedAt); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

// ErrAlreadyAttached is returned by Attach on an attached backend.
var ErrAlreadyAttached = errors.New("backend is already attached")
