package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up     key.Binding
	down   key.Binding
	left   key.Binding
	right  key.Binding
	enter  key.Binding
	esc    key.Binding
	quit   key.Binding
	detail key.Binding
	copy   key.Binding
	again  key.Binding
	yes    key.Binding
	no     key.Binding
}

var keys = keyMap{
	up:     key.NewBinding(key.WithKeys("up", "k")),
	down:   key.NewBinding(key.WithKeys("down", "j")),
	left:   key.NewBinding(key.WithKeys("left", "h")),
	right:  key.NewBinding(key.WithKeys("right", "l")),
	enter:  key.NewBinding(key.WithKeys("enter")),
	esc:    key.NewBinding(key.WithKeys("esc")),
	quit:   key.NewBinding(key.WithKeys("q")),
	detail: key.NewBinding(key.WithKeys("d")),
	copy:   key.NewBinding(key.WithKeys("c")),
	again:  key.NewBinding(key.WithKeys("s")),
	yes:    key.NewBinding(key.WithKeys("y")),
	no:     key.NewBinding(key.WithKeys("n")),
}
