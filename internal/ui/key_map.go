package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	left      key.Binding
	right     key.Binding
	up        key.Binding
	down      key.Binding
	toggle    key.Binding
	create    key.Binding
	moveRight key.Binding
	moveLeft  key.Binding
	commit    key.Binding
	cancel    key.Binding
	retry     key.Binding
	help      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev list")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next list")),
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select list")),
		create:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new list")),
		moveRight: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move right")),
		moveLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move left")),
		commit:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "update")),
		cancel:    key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc/c", "cancel")),
		retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "try again")),
		help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.create, k.commit, k.cancel, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.left, k.right, k.up, k.down},
		{k.toggle, k.create, k.moveLeft, k.moveRight},
		{k.commit, k.cancel, k.help, k.quit},
	}
}
