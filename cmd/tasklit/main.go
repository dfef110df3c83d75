package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/cli/backups"
	"github.com/julianstephens/tasklit/internal/cli/shell"
	"github.com/julianstephens/tasklit/internal/cli/system"
	"github.com/julianstephens/tasklit/internal/cli/users"
	"github.com/julianstephens/tasklit/internal/constants"
	tlerrors "github.com/julianstephens/tasklit/internal/errors"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/storage"
	"github.com/julianstephens/tasklit/internal/utils"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Storage location: a .json or .db path, a PostgreSQL connection string without a password, 'keyring' or 'memory'." env:"TASKLIT_CONFIG" default:"${config}"`
	Debug        bool   `help:"Log debug output to stderr." env:"TASKLIT_DEBUG"`
	Timezone     string `help:"IANA timezone used for due dates and the dashboard." env:"TASKLIT_TIMEZONE" default:"${timezone}"`
	NoSampleData bool   `help:"Start sessions with an empty task list instead of the sample tasks."`

	Init     system.InitCmd    `cmd:"" help:"Initialize tasklit storage."`
	Migrate  system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Shell    shell.ShellCmd    `cmd:"" help:"Drive a session from line-oriented input."`
	User     users.UserCmd     `cmd:"" help:"Manage registered users."`
	Backup   backups.BackupCmd `cmd:"" help:"Snapshot and restore registered users."`
	DebugCmd system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Single-user task tracker with a terminal dashboard"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":  constants.Version,
			"config":   constants.DefaultConfigPath,
			"timezone": constants.DefaultTimezone,
		},
	)

	store, err := storage.Open(CLI.Config)
	if err != nil {
		tlerrors.Fatal(err)
	}

	configDir, err := storage.ConfigDir(store)
	if err != nil {
		tlerrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		tlerrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:      store,
		Location:   loc,
		SampleData: !CLI.NoSampleData,
	}

	// init and doctor open storage themselves
	switch ctx.Command() {
	case "init", "doctor":
	default:
		if err := load(store); err != nil {
			tlerrors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		tlerrors.Fatal(err)
	}
}

// load opens the store, creating it on first use.
func load(store storage.Provider) error {
	err := store.Load()
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("Storage not found, initializing", "path", store.GetConfigPath())
		return store.Init()
	}
	return err
}
