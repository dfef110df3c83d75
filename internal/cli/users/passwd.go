package users

import (
	"fmt"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/constants"
)

// PasswdCmd logs in as the user and changes the password, so the current
// password is required here even though the dashboard does not ask for it.
type PasswdCmd struct {
	Username string `arg:"" help:"User whose password to change."`
	Current  string `help:"Current password." required:"" env:"TASKLIT_PASSWORD"`
	New      string `help:"New password. Prompted for when omitted." name:"new"`
	Confirm  string `help:"New password confirmation. Defaults to --new."`
}

func (c *PasswdCmd) Run(ctx *cli.Context) error {
	next, confirm, err := resolvePassword("New password for "+c.Username, c.New, c.Confirm)
	if err != nil {
		return err
	}

	release, err := ctx.Exclusive()
	if err != nil {
		return err
	}
	defer release()

	sess, err := ctx.NewSession()
	if err != nil {
		return err
	}
	if err := sess.SubmitLogin(c.Username, c.Current); err != nil {
		return fmt.Errorf("failed to authenticate %q: %w", c.Username, err)
	}
	defer sess.Logout()

	if err := sess.ChangePassword(next, confirm); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Fprintln(ctx.Out(), constants.FeedbackPasswordUpdated)
	return nil
}
