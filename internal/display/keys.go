package display

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the brew screen bindings.
type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Method key.Binding
	More   key.Binding
	Less   key.Binding
	Faster key.Binding
	Slower key.Binding
	Theme  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Method: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "method")),
		More:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more water")),
		Less:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "less water")),
		Faster: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "faster")),
		Slower: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "slower")),
		Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Method, k.More, k.Less, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Quit},
		{k.Method, k.More, k.Less},
		{k.Faster, k.Slower, k.Theme, k.Help},
	}
}
