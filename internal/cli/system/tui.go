package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/storage"
	"github.com/julianstephens/tasklit/internal/tui"
)

type TuiCmd struct {
	Ephemeral bool `help:"Keep registered users in memory only."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
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

	p := tea.NewProgram(tui.NewModel(sess, ctx.TipPicker()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
