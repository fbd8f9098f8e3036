package todos

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Store.
type Option func(*Store)

// WithKey sets the slot key the collection is stored under.
// An empty key keeps types.DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc replaces NewID for new todos.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithValidation makes Load check every stored todo against the todo JSON
// schema and drop malformed or duplicate entries. Without it the stored
// collection is taken verbatim.
func WithValidation(enabled bool) Option {
	return func(s *Store) {
		s.validate = enabled
	}
}
