package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/tasklit/internal/backup"
	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/lock"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/storage"
)

type DebugCmd struct {
	Paths DebugPathsCmd `cmd:"" help:"Show storage, log, lock and backup locations."`
	Users DebugUsersCmd `cmd:"" help:"Dump registered usernames as JSON."`
}

type DebugPathsCmd struct{}

func (cmd *DebugPathsCmd) Run(ctx *cli.Context) error {
	dir, err := storage.ConfigDir(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to resolve config directory: %w", err)
	}

	// Output in machine-readable format
	return writeJSON(ctx, map[string]string{
		"config":     ctx.Store.GetConfigPath(),
		"config_dir": dir,
		"log":        logger.LogPath(dir),
		"lock":       lock.Path(dir),
		"backups":    backup.NewManager(ctx.Store, dir).Dir(),
	})
}

type DebugUsersCmd struct{}

type usersDump struct {
	Count     int      `json:"count"`
	Bootstrap bool     `json:"bootstrap"`
	Usernames []string `json:"usernames"`
}

func (cmd *DebugUsersCmd) Run(ctx *cli.Context) error {
	creds, err := ctx.Credentials()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	return writeJSON(ctx, usersDump{
		Count:     creds.Len(),
		Bootstrap: creds.Bootstrap(),
		Usernames: creds.Usernames(),
	})
}

func writeJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(ctx.Out(), string(jsonBytes))
	return nil
}
