package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings for browsing the list.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Clear  key.Binding
	Filter key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// inputKeys holds the bindings active while the text input has focus.
type inputKeys struct {
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Add:    key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		Filter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func defaultInputKeys() inputKeys {
	return inputKeys{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Add, k.Edit, k.Delete},
		{k.Clear, k.Filter},
		{k.Help, k.Quit},
	}
}

// ShortHelp implements help.KeyMap.
func (k inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k inputKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
