package system

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/keyring"
	"github.com/julianstephens/tasklit/internal/lock"
	"github.com/julianstephens/tasklit/internal/storage"
	"github.com/julianstephens/tasklit/internal/storage/sqlite"
)

var ErrChecksFailed = errors.New("one or more checks failed")

type DoctorCmd struct{}

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// needsStorage checks are skipped when storage cannot be loaded.
	needsStorage bool
	// warnOnly failures do not fail the command.
	warnOnly bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion, needsStorage: true},
	{name: "Credential table", run: checkCredentials, needsStorage: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Instance lock", run: checkInstanceLock, warnOnly: true},
	{name: "OS keyring", run: checkKeyring, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Out()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsStorage && !reachable {
			fmt.Fprintf(out, "⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(out, "✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Fprintf(out, "⚠ %s: WARNING\n", c.name)
			fmt.Fprintf(out, "   %v\n", err)
		default:
			report(out, c.name, err)
			hasError = true
			if c.name == checks[0].name {
				reachable = false
			}
		}
	}

	fmt.Fprintln(out)
	if hasError {
		return ErrChecksFailed
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

func report(out io.Writer, name string, err error) {
	fmt.Fprintf(out, "❌ %s: FAIL\n", name)
	fmt.Fprintf(out, "   Error: %v\n", err)
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaStatus()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind %d, run 'tasklit migrate'", current, latest)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, latest)
	}
	return nil
}

func checkCredentials(ctx *cli.Context) error {
	creds, err := ctx.Store.LoadCredentials()
	if err != nil {
		return fmt.Errorf("credential table is unreadable: %w", err)
	}
	for name := range creds {
		if name == "" {
			return fmt.Errorf("credential table contains an empty username")
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if ctx.Now != nil {
		now = ctx.Now()
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == nil {
		return fmt.Errorf("no timezone configured")
	}
	return nil
}

func checkInstanceLock(ctx *cli.Context) error {
	dir, err := storage.ConfigDir(ctx.Store)
	if err != nil {
		return err
	}
	if _, err := os.Stat(lock.Path(dir)); err == nil {
		return fmt.Errorf("lockfile present at %s; another session may be running", lock.Path(dir))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; the keyring backend will not work")
	}
	return nil
}
