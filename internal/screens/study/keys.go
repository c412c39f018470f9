package study

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Flip    key.Binding
	Known   key.Binding
	Unknown key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Flip: key.NewBinding(
			key.WithKeys("space", "enter"),
			key.WithHelp("space", "flip"),
		),
		Known: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "know it"),
		),
		Unknown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Flip, k.Unknown, k.Known, k.Quit}
}
