package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the kiosk's only input: the close signal.
type keyMap struct {
	Close key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Close: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Close"),
		),
	}
}
