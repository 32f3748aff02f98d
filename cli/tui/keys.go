package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines key bindings.
type keyMap struct {
	Quit      key.Binding
	SwitchTab key.Binding
	Up        key.Binding
	Down      key.Binding
	Focus     key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Open      key.Binding
	Upload    key.Binding
	Process   key.Binding
	Artifacts key.Binding
	Refresh   key.Binding
	Delete    key.Binding
	Unstage   key.Binding
	Clear     key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Submit    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	SwitchTab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch tab"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Focus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "staged/server list"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	ToggleAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select all"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "add files"),
	),
	Upload: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "upload"),
	),
	Process: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "process"),
	),
	Artifacts: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "process JSON"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Unstage: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "unstage"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear staged"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchTab, k.Open, k.Upload, k.Process, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SwitchTab, k.Up, k.Down, k.Toggle, k.ToggleAll},
		{k.Open, k.Focus, k.Unstage, k.Clear, k.Upload},
		{k.Process, k.Artifacts, k.Refresh, k.Delete, k.Quit},
	}
}
