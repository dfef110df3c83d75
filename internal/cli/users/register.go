package users

import (
	"fmt"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/constants"
)

type RegisterCmd struct {
	Username string `arg:"" help:"Username to create."`
	Password string `help:"Password. Prompted for when omitted." env:"TASKLIT_PASSWORD"`
	Confirm  string `help:"Password confirmation. Defaults to --password."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	password, confirm, err := resolvePassword("Password for "+c.Username, c.Password, c.Confirm)
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
	if err := sess.SubmitRegister(c.Username, password, confirm); err != nil {
		return fmt.Errorf("failed to register %q: %w", c.Username, err)
	}

	fmt.Fprintln(ctx.Out(), constants.FeedbackRegistered)
	return nil
}
