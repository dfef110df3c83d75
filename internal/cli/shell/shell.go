// Package shell drives a session from line-oriented input, one intent per
// line, for scripting and quick use without the TUI.
package shell

import (
	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/storage"
)

type ShellCmd struct {
	Ephemeral bool `help:"Keep registered users in memory only."`
}

func (c *ShellCmd) Run(ctx *cli.Context) error {
	if c.Ephemeral {
		ctx.Store = storage.NewMemoryStore()
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
	return NewRunner(sess, ctx.TipPicker(), ctx.Out()).Run(ctx.In())
}
