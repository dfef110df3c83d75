package users

import (
	"github.com/charmbracelet/huh"
)

// promptPasswordFunc asks for a password and its confirmation on the terminal.
// Tests replace it.
var promptPasswordFunc = promptPassword

func promptPassword(title string) (string, string, error) {
	var password, confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return password, confirm, nil
}

// resolvePassword uses the flag values when a password was given, and the
// interactive prompt otherwise.
func resolvePassword(title, password, confirm string) (string, string, error) {
	if password != "" {
		if confirm == "" {
			confirm = password
		}
		return password, confirm, nil
	}
	return promptPasswordFunc(title)
}
