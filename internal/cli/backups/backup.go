package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tasklit/internal/backup"
	"github.com/julianstephens/tasklit/internal/cli"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the registered users." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the registered users with a snapshot."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(ctx.Out(), "✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	out := ctx.Out()
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups found.")
		fmt.Fprintf(out, "Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Fprintf(out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		fmt.Fprintf(out, "  %s  %s  (%d bytes)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), b.Size)
	}
	fmt.Fprintf(out, "\nBackup directory: %s\n", mgr.Dir())
	return nil
}

// confirmFunc asks before overwriting the credential table. Tests replace it.
var confirmFunc = confirm

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description("A snapshot of the current users is taken first.").
		Value(&ok).
		Run()
	return ok, err
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the snapshot to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	path, err := resolve(c.BackupFile, mgr.Dir())
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirmFunc(fmt.Sprintf("Replace registered users with %s?", filepath.Base(path)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.Out(), "Restore cancelled.")
			return nil
		}
	}

	release, err := ctx.Exclusive()
	if err != nil {
		return err
	}
	defer release()

	n, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	fmt.Fprintf(ctx.Out(), "✓ Restored %d user(s) from %s\n", n, filepath.Base(path))
	return nil
}

// resolve accepts an existing path, or a bare filename inside the backup dir.
func resolve(name, dir string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	if !filepath.IsAbs(name) {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s and %s", backup.ErrNotFound, name, dir)
}
