package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up              key.Binding
	down            key.Binding
	enter           key.Binding
	back            key.Binding
	search          key.Binding
	recent          key.Binding
	favorites       key.Binding
	add             key.Binding
	refresh         key.Binding
	debug           key.Binding
	copyLink        key.Binding
	copyIngredients key.Binding
	open            key.Binding
	signIn          key.Binding
	quit            key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:              key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:            key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:           key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:            key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		search:          key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search or paste url")),
		recent:          key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "recent")),
		favorites:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "favorites")),
		add:             key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		refresh:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		debug:           key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "raw response")),
		copyLink:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		copyIngredients: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "copy ingredients")),
		open:            key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open original")),
		signIn:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in with Google")),
		quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.search, k.recent, k.favorites, k.add},
		{k.refresh, k.debug, k.copyLink, k.copyIngredients, k.open},
		{k.quit},
	}
}
