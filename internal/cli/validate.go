package cli

import (
	"fmt"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when conflicts are found."`
}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	// weekly tasks are listed per week, so only the lookback window is read
	now := ctx.now()
	snap, err := storage.LoadSnapshot(ctx.bg(), ctx.Store, ctx.User, lookback(now), calendar.AddDays(calendar.EndOfMonth(now), 7))
	if err != nil {
		return err
	}
	daily, err := ctx.Store.ListDailyTasks(ctx.bg(), ctx.User, firstDateKey, lastDateKey)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	ctx.println("Validating habits and tasks...")
	result := validation.New().ValidateAll(snap.Habits, daily, snap.WeeklyTasks)

	ctx.println()
	ctx.println(result.FormatReport())

	if cmd.Strict && result.HasConflicts() {
		return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}
