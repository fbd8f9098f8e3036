// Package tui implements the interactive todo list on top of bubbletea.
//
// The model never holds todo state of its own. Key presses are forwarded to
// the store as intents and the view renders the latest todos.Snapshot, which
// arrives through a store subscription.
package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/todos/pkg/todos"
	"github.com/mesh-intelligence/todos/pkg/types"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

// snapshotMsg carries a store snapshot into the update loop.
type snapshotMsg todos.Snapshot

// Model is the bubbletea model for the todo list.
type Model struct {
	store *todos.Store
	feed  *feed

	snap   todos.Snapshot
	cursor int

	mode   mode
	editID string
	input  textinput.Model
	status string

	keys      keyMap
	inputKeys inputKeys
	help      help.Model
}

// New returns a model bound to store. Call Close when the program exits.
func New(store *todos.Store) Model {
	ti := textinput.New()
	ti.Prompt = "> "

	return Model{
		store:     store,
		feed:      subscribe(store),
		snap:      store.Snapshot(),
		input:     ti,
		keys:      defaultKeys(),
		inputKeys: defaultInputKeys(),
		help:      help.New(),
	}
}

// Close cancels the store subscription.
func (m Model) Close() {
	m.feed.close()
}

// Run starts an interactive session on in and out and blocks until the user
// quits.
func Run(store *todos.Store, in io.Reader, out io.Writer) error {
	m := New(store)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.feed.listen()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.adopt(todos.Snapshot(msg))
		return m, m.feed.listen()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.Toggle(t.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.store.Remove(t.ID)
		}
	case key.Matches(msg, m.keys.Clear):
		if n := m.store.ClearCompleted(); n == 0 {
			m.status = "Nothing to clear"
		}
	case key.Matches(msg, m.keys.Filter):
		m.store.SetFilter(m.snap.Filter.Next())
		m.cursor = 0
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Placeholder = "What needs to be done?"
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = t.ID
		m.input.Placeholder = "Edit todo"
		m.input.SetValue(t.Text)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.adopt(m.store.Snapshot())
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Cancel):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.inputKeys.Submit):
		text := m.input.Value()
		m.status = ""
		switch m.mode {
		case modeAdd:
			if _, ok := m.store.Add(text); !ok {
				m.status = "Nothing to add"
				return m, nil
			}
			m.cursor = 0
		case modeEdit:
			// Blank text abandons the edit.
			if strings.TrimSpace(text) == "" {
				m.status = "Edit abandoned"
			} else {
				m.store.Edit(m.editID, text)
			}
		}
		m.closeInput()
		m.adopt(m.store.Snapshot())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
}

// adopt replaces the rendered snapshot unless s is older than the current one.
func (m *Model) adopt(s todos.Snapshot) {
	if s.Version < m.snap.Version {
		return
	}
	m.snap = s
	if m.cursor >= len(s.Visible) {
		m.cursor = len(s.Visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the todo under the cursor.
func (m Model) selected() (types.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Visible) {
		return types.Todo{}, false
	}
	return m.snap.Visible[m.cursor], true
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Todos"))
	b.WriteString("  ")
	b.WriteString(renderTabs(m.snap.Filter))
	b.WriteString("\n")
	b.WriteString(renderCounts(m.snap.Remaining, m.snap.Total))
	b.WriteString("\n\n")

	if len(m.snap.Visible) == 0 {
		b.WriteString(mutedStyle.Render(emptyText(m.snap)))
		b.WriteString("\n")
	}
	for i, t := range m.snap.Visible {
		b.WriteString(renderItem(t, i == m.cursor && m.mode == modeBrowse))
		b.WriteString("\n")
	}

	if m.mode != modeBrowse {
		title := "Add todo"
		if m.mode == modeEdit {
			title = "Edit todo"
		}
		if m.status != "" {
			title += "  " + errorStyle.Render(m.status)
		}
		b.WriteString(panelStyle.Render(title + "\n" + m.input.View()))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.inputKeys))
	} else {
		if m.status != "" {
			b.WriteString(mutedStyle.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(m.help.View(m.keys))
	}
	return panelStyle.Render(b.String())
}

func emptyText(s todos.Snapshot) string {
	switch {
	case s.Total == 0:
		return "Nothing to do. Press a to add a todo."
	case s.Filter == types.FilterActive:
		return "All done."
	default:
		return "No " + s.Filter.String() + " todos."
	}
}
