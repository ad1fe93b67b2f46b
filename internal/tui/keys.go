package tui

import "github.com/charmbracelet/bubbles/key"

// WindowKeys are active in the settings window.
type WindowKeys struct {
	Save    key.Binding
	Refresh key.Binding
	Next    key.Binding
	Prev    key.Binding
	Quit    key.Binding
}

var windowKeys = WindowKeys{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s", "enter"),
		key.WithHelp("Ctrl+s", "save"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("Ctrl+r", "refresh now"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("Shift+Tab", "previous field"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c", "ctrl+q"),
		key.WithHelp("Esc", "close"),
	),
}
