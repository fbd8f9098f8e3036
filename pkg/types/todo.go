package types

import (
	"strings"
	"time"
)

// Todo is a single task entry. The JSON field names are the persisted wire
// format and must not change.
type Todo struct {
	ID        string `json:"id"`        // Opaque unique ID, immutable after creation.
	Text      string `json:"text"`      // Trimmed, non-empty for todos created through the store.
	Completed bool   `json:"completed"` // Completion flag, false on creation.
	CreatedAt int64  `json:"createdAt"` // Creation time in Unix milliseconds.
}

// Created returns CreatedAt as a time.Time.
func (t Todo) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// Matches reports whether the todo belongs to the view selected by f.
// An unrecognized filter matches everything, like FilterAll.
func (t Todo) Matches(f Filter) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Filter selects which todos are visible.
type Filter string

// Filter values.
const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Next returns the filter after f in display order, wrapping around.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

func (f Filter) String() string {
	return string(f)
}

// ParseFilter converts user input to a Filter. Matching is case-insensitive
// and ignores surrounding whitespace; the empty string yields FilterAll.
// Returns ErrInvalidFilter for anything else.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !f.Valid() {
		return FilterAll, ErrInvalidFilter
	}
	return f, nil
}
