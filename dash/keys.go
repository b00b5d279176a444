package dash

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the panel.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Panel   key.Binding
	Devices key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns the bindings shown in the collapsed help line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns all bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Panel, k.Devices},
		{k.Refresh, k.Help, k.Quit},
	}
}

var keys = keyMap{
	NextTab: key.NewBinding(
		key.WithKeys("tab", "right"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "left"),
		key.WithHelp("shift+tab", "prev tab"),
	),
	Panel: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "panel"),
	),
	Devices: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "devices"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
