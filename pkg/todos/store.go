package todos

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Snapshot is the state a presentation layer renders after a change.
type Snapshot struct {
	Version   uint64       // Incremented on every state change.
	Filter    types.Filter // Active filter.
	Visible   []types.Todo // Todos matching Filter, collection order.
	Remaining int          // Todos not completed.
	Total     int          // Collection length.
}

// Store is the single source of truth for a todo collection, its active
// filter, and its persisted snapshot. A nil slot disables persistence.
type Store struct {
	mu       sync.Mutex
	slot     types.Slot
	key      string
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
	validate bool

	items   []types.Todo
	filter  types.Filter
	version uint64
	loaded  bool // Load has run; saves are allowed.
	touched bool // mutated before Load.
	closed  bool

	subs []*subscriber
}

type subscriber struct {
	fn func(Snapshot)
}

// New creates an empty store backed by slot. Call Load before serving
// mutations so earlier saved state is picked up.
func New(slot types.Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		key:    types.DefaultKey,
		log:    zap.NewNop(),
		now:    time.Now,
		newID:  NewID,
		filter: types.FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot key the collection is stored under.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the collection with the snapshot stored in the slot. A
// missing, unreadable, or non-array snapshot leaves the collection empty.
// Load runs once; later calls do nothing. If the collection was already
// mutated, Load keeps it and only enables saving.
func (s *Store) Load() {
	s.mu.Lock()
	if s.loaded || s.closed {
		s.mu.Unlock()
		return
	}
	s.loaded = true
	if s.touched {
		s.log.Debug("keeping collection mutated before load", zap.String("key", s.key))
	} else if items := s.readLocked(); items != nil {
		s.items = items
	}
	s.changedLocked()
}

// readLocked reads and decodes the stored snapshot. It returns nil when there
// is nothing usable. The caller must hold s.mu.
func (s *Store) readLocked() []types.Todo {
	if s.slot == nil {
		return nil
	}
	data, err := s.slot.Get(s.key)
	if err != nil {
		if !errors.Is(err, types.ErrSlotEmpty) {
			s.log.Warn("reading snapshot", zap.String("key", s.key), zap.Error(err))
		}
		return nil
	}

	var items []types.Todo
	if s.validate {
		items, err = decodeSnapshotStrict(data, s.log)
	} else {
		items, err = decodeSnapshot(data)
	}
	if err != nil {
		s.log.Warn("discarding unreadable snapshot", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	return items
}

// saveLocked writes the collection to the slot. Failures are logged and
// dropped. Nothing is written before Load. The caller must hold s.mu.
func (s *Store) saveLocked(op string) {
	if !s.loaded || s.slot == nil {
		return
	}
	data, err := encodeSnapshot(s.items)
	if err != nil {
		s.log.Warn("encoding snapshot", zap.String("op", op), zap.Error(err))
		return
	}
	if err := s.slot.Set(s.key, data); err != nil {
		s.log.Warn("saving snapshot",
			zap.String("op", op),
			zap.String("key", s.key),
			zap.Int("bytes", len(data)),
			zap.Error(err))
	}
}

// mutate applies fn under the lock. When fn reports a change the collection
// is saved and subscribers are notified.
func (s *Store) mutate(op string, fn func() bool) bool {
	s.mu.Lock()
	if s.closed || !fn() {
		s.mu.Unlock()
		return false
	}
	if !s.loaded {
		s.touched = true
	}
	s.saveLocked(op)
	s.changedLocked()
	return true
}

// changedLocked bumps the version, releases s.mu and notifies subscribers.
// The caller must hold s.mu.
func (s *Store) changedLocked() {
	s.version++
	snap := s.snapshotLocked()
	subs := make([]*subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

// Add trims text and prepends a new incomplete todo. Blank text is ignored.
// Returns the new todo and whether it was added.
func (s *Store) Add(text string) (types.Todo, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Todo{}, false
	}
	var added types.Todo
	ok := s.mutate("add", func() bool {
		added = types.Todo{
			ID:        s.newID(),
			Text:      text,
			Completed: false,
			CreatedAt: s.now().UnixMilli(),
		}
		items := make([]types.Todo, 0, len(s.items)+1)
		items = append(items, added)
		s.items = append(items, s.items...)
		return true
	})
	return added, ok
}

// Toggle flips the completed flag of the todo with the given ID.
// Returns false if no todo has that ID.
func (s *Store) Toggle(id string) bool {
	return s.mutate("toggle", func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		s.items[i].Completed = !s.items[i].Completed
		return true
	})
}

// Remove deletes the todo with the given ID.
// Returns false if no todo has that ID.
func (s *Store) Remove(id string) bool {
	return s.mutate("remove", func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		items := make([]types.Todo, 0, len(s.items)-1)
		items = append(items, s.items[:i]...)
		s.items = append(items, s.items[i+1:]...)
		return true
	})
}

// Edit replaces the text of the todo with the given ID with the trimmed
// text. Blank text abandons the edit and keeps the original.
// Returns false if the edit was abandoned or no todo has that ID.
func (s *Store) Edit(id, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return s.mutate("edit", func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		s.items[i].Text = text
		return true
	})
}

// ClearCompleted removes every completed todo and returns how many were
// removed.
func (s *Store) ClearCompleted() int {
	var removed int
	s.mutate("clear-completed", func() bool {
		kept := make([]types.Todo, 0, len(s.items))
		for _, t := range s.items {
			if t.Completed {
				removed++
				continue
			}
			kept = append(kept, t)
		}
		if removed == 0 {
			return false
		}
		s.items = kept
		return true
	})
	return removed
}

// SetFilter selects the visible view. It does not touch the collection or
// the slot. Unknown filters are ignored and false is returned.
func (s *Store) SetFilter(f types.Filter) bool {
	if !f.Valid() {
		return false
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.filter = f
	s.changedLocked()
	return true
}

// Filter returns the active filter.
func (s *Store) Filter() types.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Len returns the number of todos in the collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Remaining returns the number of todos not completed.
func (s *Store) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingLocked()
}

// Visible returns the todos matching the active filter in collection order.
func (s *Store) Visible() []types.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked(s.filter)
}

// VisibleFor returns the todos matching f without changing the active filter.
func (s *Store) VisibleFor(f types.Filter) []types.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked(f)
}

// Items returns a copy of the full collection.
func (s *Store) Items() []types.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked(types.FilterAll)
}

// Get returns the todo with the given ID.
func (s *Store) Get(id string) (types.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return types.Todo{}, false
	}
	return s.items[i], true
}

// Snapshot returns every presentation query in one consistent read.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a Snapshot after every state change,
// including Load and SetFilter. Callbacks run synchronously on the goroutine
// that caused the change, after the store's lock is released. The returned
// function cancels the subscription and may be called more than once.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	sub := &subscriber{fn: fn}
	s.mu.Lock()
	if !s.closed {
		s.subs = append(s.subs, sub)
	}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, v := range s.subs {
				if v == sub {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Close drops all subscribers. Mutations after Close do nothing and queries
// return the last state. Close does not close the slot; whoever opened the
// slot owns it.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) remainingLocked() int {
	n := 0
	for _, t := range s.items {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (s *Store) visibleLocked(f types.Filter) []types.Todo {
	out := make([]types.Todo, 0, len(s.items))
	for _, t := range s.items {
		if t.Matches(f) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Version:   s.version,
		Filter:    s.filter,
		Visible:   s.visibleLocked(s.filter),
		Remaining: s.remainingLocked(),
		Total:     len(s.items),
	}
}
