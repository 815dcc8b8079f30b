package ui

import "github.com/charmbracelet/bubbles/key"

// keys are the shortcuts available while the text input is not focused.
// Taps on the canvas reach the same actions through the mouse.
var keys = struct {
	Quit     key.Binding
	Back     key.Binding
	Toggle   key.Binding
	Type     key.Binding
	Activate key.Binding
	Debug    key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back")),
	Toggle:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),
	Type:     key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("i", "type")),
	Activate: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "activate")),
	Debug:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "debug")),
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PageUp:   key.NewBinding(key.WithKeys("pgup")),
	PageDown: key.NewBinding(key.WithKeys("pgdown")),
}

// inputKeys apply while the text input has focus.
var inputKeys = struct {
	Confirm key.Binding
	Cancel  key.Binding
}{
	Confirm: key.NewBinding(key.WithKeys("enter")),
	Cancel:  key.NewBinding(key.WithKeys("esc")),
}
