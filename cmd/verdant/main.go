package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/verdant/internal/cli"
	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/errors"
	"github.com/julianstephens/verdant/internal/identity"
	"github.com/julianstephens/verdant/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Data file path (*.db or *.json), PostgreSQL connection string, or 'keyring'. Credentials must NOT be embedded in connection strings; store them with 'verdant keyring set'." default:"~/.config/verdant/verdant.db" env:"VERDANT_CONFIG"`
	User    string `help:"User whose data is read and written. Falls back to $VERDANT_USER."`
	Profile string `help:"Keyring profile for the connection string." env:"VERDANT_PROFILE"`
	Debug   bool   `help:"Log debug output to stderr." env:"VERDANT_DEBUG"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize verdant storage."`
	Migrate  cli.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and their daily check-ins."`
	Task     cli.TaskCmd     `cmd:"" help:"Manage one-off daily tasks."`
	Weekly   cli.WeeklyCmd   `cmd:"" help:"Manage weekly tasks."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show completion statistics."`
	Focus    cli.FocusCmd    `cmd:"" help:"Log and report focus sessions."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage data backups."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored data for inconsistencies."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the connection string in the OS keyring."`
}

// lockFree lists commands that run without the single-writer lock.
var lockFree = map[string]bool{
	"init":    true,
	"keyring": true,
	"doctor":  true,
}

func main() {
	// a missing .env is not an error
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit and task tracker with completion statistics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"focus_minutes": strconv.Itoa(constants.FocusMinutes),
		},
	)

	dataDir := filepath.Dir(cli.ExpandHome(constants.DefaultConfigPath))
	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: dataDir}); err != nil {
		errors.Fatal(err)
	}
	defer logger.Close()

	store, err := cli.OpenStore(CLI.Config, CLI.Profile)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:   store,
		User:    identity.Resolve(CLI.User, os.Getenv(constants.UserEnvVar)),
		Profile: CLI.Profile,
	}
	logger.Debug("Starting command", "command", ctx.Command(), "user", appCtx.User)

	if !lockFree[strings.Fields(ctx.Command())[0]] {
		if err := appCtx.AcquireLock(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	appCtx.Close()
	errors.Fatal(err)
}
