// Package users holds the credential-table admin commands.
package users

type UserCmd struct {
	Register RegisterCmd `cmd:"" help:"Register a new user."`
	Passwd   PasswdCmd   `cmd:"" help:"Change a user's password."`
	List     ListCmd     `cmd:"" help:"List registered users." default:"1"`
}
