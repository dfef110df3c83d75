package system

import (
	"fmt"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}

	if current, latest, err := m.SchemaStatus(); err == nil && current > 0 && current < latest {
		if err := snapshot(ctx); err != nil {
			return fmt.Errorf("pre-migration backup failed: %w", err)
		}
	}

	count, err := m.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Fprintln(ctx.Out(), "No migrations to apply. Database is up to date.")
	} else {
		fmt.Fprintf(ctx.Out(), "Successfully applied %d migration(s).\n", count)
	}
	return nil
}

func snapshot(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out(), "Backed up registered users to: %s\n", path)
	return nil
}
