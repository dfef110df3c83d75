package users

import (
	"fmt"

	"github.com/julianstephens/tasklit/internal/cli"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	creds, err := ctx.Credentials()
	if err != nil {
		return err
	}
	out := ctx.Out()

	if err := creds.RequireUsers(); err != nil {
		fmt.Fprintln(out, "No registered users. Any username and password will be accepted at login.")
		return nil
	}

	fmt.Fprintln(out, "Registered users:")
	for _, name := range creds.Usernames() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
