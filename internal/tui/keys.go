package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab            key.Binding
	ShiftTab       key.Binding
	Quit           key.Binding
	Help           key.Binding
	Back           key.Binding
	SwitchForm     key.Binding
	NewTip         key.Binding
	ChangePassword key.Binding
	Logout         key.Binding
	Apply          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		SwitchForm: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "login/register"),
		),
		NewTip: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new tip"),
		),
		ChangePassword: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "change password"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
	}
}
