package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Back     key.Binding
	Forward  key.Binding
	NextTab  key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Views
	Search  key.Binding
	Digging key.Binding

	// Playback transport
	PlayPause  key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding

	// Actions
	Like     key.Binding
	Hide     key.Binding
	Rate     key.Binding
	Download key.Binding
	Share    key.Binding
	Refresh  key.Binding
	Filter   key.Binding
	OpenLink key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select/play"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Back: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "forward"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch tab"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next page"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Digging: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "digging"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "seek -10s"),
		),
		SeekFwd: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "seek +10s"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		Like: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "like"),
		),
		Hide: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "hide"),
		),
		Rate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rate album"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		Share: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		OpenLink: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open link"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
