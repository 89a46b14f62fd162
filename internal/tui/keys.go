package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	ZoomOut key.Binding
	Prev    key.Binding
	Next    key.Binding
	Entry   key.Binding
	Today   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "backspace"), key.WithHelp("-", "zoom out")),
		Prev:    key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev page")),
		Next:    key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next page")),
		Entry:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "type a date")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.ZoomOut, k.Entry, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.ZoomOut, k.Prev, k.Next},
		{k.Entry, k.Today, k.Help, k.Quit},
	}
}
