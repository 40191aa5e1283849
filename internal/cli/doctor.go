package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/migration"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/validation"
)

// migrator is implemented by stores that keep a versioned schema.
type migrator interface {
	Runner() (*migration.Runner, error)
}

type DoctorCmd struct{}

type doctorCheck struct {
	name     string
	warnOnly bool
	needsDB  bool
	gate     bool
	run      func(ctx *Context) error
}

var doctorChecks = []doctorCheck{
	{name: "Storage reachable", gate: true, run: checkStoreReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	reachable := false

	for _, check := range doctorChecks {
		if check.needsDB && !reachable {
			ctx.printf("⊘ %s: SKIPPED (storage not reachable)\n", check.name)
			continue
		}

		err := check.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", check.name)
			if check.gate {
				reachable = true
			}
		case check.warnOnly:
			ctx.printf("⚠ %s: WARNING\n", check.name)
			ctx.printf("   %v\n", err)
		default:
			ctx.printf("❌ %s: FAIL\n", check.name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.ListHabits(ctx.bg(), ctx.User); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		// the JSON snapshot has no schema
		return nil
	}

	runner, err := m.Runner()
	if err != nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", currentVersion, latestVersion)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		// remote databases are backed up by their server
		return nil
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'verdant backup create'")
	}
	return nil
}

func checkValidation(ctx *Context) error {
	now := ctx.now()
	snap, err := storage.LoadSnapshot(ctx.bg(), ctx.Store, ctx.User, calendar.StartOfMonth(now), calendar.EndOfMonth(now))
	if err != nil {
		return err
	}

	result := validation.New().ValidateAll(snap.Habits, snap.DailyTasks, snap.WeeklyTasks)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) this month, run 'verdant validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	// date keys follow the local calendar, so UTC is only worth a note
	if now.Location() == time.UTC {
		ctx.println("   Note: timezone is UTC")
	}
	return nil
}
