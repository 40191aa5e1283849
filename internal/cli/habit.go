package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Rename a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	List   HabitListCmd   `cmd:"" help:"List habits with this week's marks."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
}

func findHabit(ctx *Context, ref string) (models.Habit, error) {
	habits, err := ctx.Store.ListHabits(ctx.bg(), ctx.User)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if matchID(ref, h.ID, h.Name) {
			return h, nil
		}
	}
	return models.Habit{}, storage.NotFound("habit", ref)
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	id, err := ctx.Store.CreateHabit(ctx.bg(), ctx.User, c.Name)
	if err != nil {
		return err
	}

	ctx.printf("Added habit: %s (ID: %s)\n", strings.TrimSpace(c.Name), shortID(id))
	return nil
}

type HabitEditCmd struct {
	ID   string `arg:"" help:"Habit ID, ID prefix or name."`
	Name string `arg:"" help:"New name."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateHabit(ctx.bg(), ctx.User, habit.ID, models.HabitPatch{Name: &c.Name}); err != nil {
		return err
	}

	ctx.printf("Renamed habit %q to %q\n", habit.Name, strings.TrimSpace(c.Name))
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit ID, ID prefix or name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteHabit(ctx.bg(), ctx.User, habit.ID); err != nil {
		return err
	}

	ctx.printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct {
	Date string `help:"Show the week containing this date (YYYY-MM-DD)."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ref, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.ListHabits(ctx.bg(), ctx.User)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.println("No habits found.")
		return nil
	}

	days := calendar.DaysInCurrentWeek(ref)
	ctx.printf("%-8s  %-20s  %s\n", "ID", "Habit", weekHeader(days))

	for _, h := range habits {
		ctx.printf("%-8s  %-20s  %s\n", shortID(h.ID), truncate(h.Name, 20), weekMarks(h, days))
	}
	return nil
}

type HabitToggleCmd struct {
	ID   string `arg:"" help:"Habit ID, ID prefix or name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}
	key := calendar.FormatDateKey(day)

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	done := !habit.CompletedOn(key)
	patch := models.HabitPatch{Completions: models.Completions{key: done}}
	if err := ctx.Store.UpdateHabit(ctx.bg(), ctx.User, habit.ID, patch); err != nil {
		return err
	}

	if done {
		ctx.printf("Marked habit %q for %s\n", habit.Name, key)
	} else {
		ctx.printf("Unmarked habit %q for %s\n", habit.Name, key)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return fmt.Sprintf("%s…", string(r[:n-1]))
}
