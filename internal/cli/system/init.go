package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing file store before initialization."`
	Source string `help:"Backend (path, connection string, keyring) to copy registered users from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force || c.Source != "" {
		release, err := ctx.Exclusive()
		if err != nil {
			return err
		}
		defer release()
	}

	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	err := ctx.Store.Init()
	switch {
	case errors.Is(err, storage.ErrAlreadyInitialized):
		fmt.Fprintf(ctx.Out(), "Storage already initialized at: %s\n", ctx.Store.GetConfigPath())
		if err := ctx.Store.Load(); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		fmt.Fprintf(ctx.Out(), "Initialized tasklit storage at: %s\n", ctx.Store.GetConfigPath())
	}

	if c.Source != "" {
		fmt.Fprintf(ctx.Out(), "Copying registered users from: %s\n", c.Source)
		n, err := copyCredentials(c.Source, ctx.Store)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Fprintf(ctx.Out(), "Copied %d user(s)\n", n)
	}
	return nil
}

func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	switch path {
	case constants.MemoryBackend, constants.KeyringBackend, constants.PostgresBackend:
		return fmt.Errorf("--force only applies to file storage, not %s", path)
	}

	if c.Source != "" {
		absPath, err := filepath.Abs(path)
		if err == nil {
			path = absPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == path {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing storage: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing storage: %w", err)
		}
		fmt.Fprintf(ctx.Out(), "Deleted existing storage at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing storage: %w", err)
	}
	return nil
}

// copyCredentials replaces dst's credential table with the one in source.
func copyCredentials(source string, dst storage.Provider) (int, error) {
	src, err := storage.Open(source)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source: %w", err)
	}
	defer src.Close()

	creds, err := src.LoadCredentials()
	if err != nil {
		return 0, fmt.Errorf("failed to read users from source: %w", err)
	}
	if err := dst.SaveCredentials(creds); err != nil {
		return 0, fmt.Errorf("failed to save users to destination: %w", err)
	}
	return len(creds), nil
}
