package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the dashboard key bindings.
type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	ColLeft  key.Binding
	ColRight key.Binding
	Sort     key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab/l", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab/h", "Previous tab"),
		),
		ColLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous column"),
		),
		ColRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Next column"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s/enter", "Cycle sort"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh now"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Scroll down"),
		),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevTab, k.ColLeft, k.ColRight, k.Sort, k.Up, k.Down, k.Refresh, k.Help, k.Quit}
}
