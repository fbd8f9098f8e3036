package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/todos/pkg/todos"
)

// feed turns store notifications into bubbletea messages. It keeps only the
// newest undelivered snapshot, so a slow update loop never blocks the store.
type feed struct {
	ch     chan todos.Snapshot
	done   chan struct{}
	cancel func()
	once   sync.Once
}

func subscribe(store *todos.Store) *feed {
	f := &feed{
		ch:   make(chan todos.Snapshot, 1),
		done: make(chan struct{}),
	}
	f.cancel = store.Subscribe(f.push)
	return f
}

// push replaces any pending snapshot with s.
func (f *feed) push(s todos.Snapshot) {
	for {
		select {
		case f.ch <- s:
			return
		case <-f.done:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// listen waits for the next snapshot. It returns nil once the feed is closed.
func (f *feed) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-f.ch:
			return snapshotMsg(s)
		case <-f.done:
			return nil
		}
	}
}

func (f *feed) close() {
	f.once.Do(func() {
		f.cancel()
		close(f.done)
	})
}
