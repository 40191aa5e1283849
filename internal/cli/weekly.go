package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/validation"
)

type WeeklyCmd struct {
	Add    WeeklyAddCmd    `cmd:"" help:"Add a task for a week."`
	Edit   WeeklyEditCmd   `cmd:"" help:"Rename a weekly task."`
	Delete WeeklyDeleteCmd `cmd:"" help:"Delete a weekly task."`
	Toggle WeeklyToggleCmd `cmd:"" help:"Toggle a weekly task's completion for a day."`
	List   WeeklyListCmd   `cmd:"" help:"List the tasks of a week."`
}

// weekOf resolves value to the Monday of its week.
func weekOf(ctx *Context, value string) (time.Time, error) {
	day, err := ctx.resolveDate(value)
	if err != nil {
		return time.Time{}, err
	}
	return calendar.StartOfWeek(day), nil
}

func findWeeklyTask(ctx *Context, weekStart time.Time, ref string) (models.WeeklyTask, error) {
	tasks, err := ctx.Store.ListWeeklyTasks(ctx.bg(), ctx.User, calendar.FormatDateKey(weekStart))
	if err != nil {
		return models.WeeklyTask{}, err
	}
	for _, t := range tasks {
		if matchID(ref, t.ID, t.Name) {
			return t, nil
		}
	}
	return models.WeeklyTask{}, storage.NotFound("weekly task", ref)
}

type WeeklyAddCmd struct {
	Name string `arg:"" help:"Task name."`
	Week string `short:"w" help:"Any day of the week in YYYY-MM-DD format (default: this week)."`
}

func (c *WeeklyAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	week, err := weekOf(ctx, c.Week)
	if err != nil {
		return err
	}
	key := calendar.FormatDateKey(week)

	id, err := ctx.Store.CreateWeeklyTask(ctx.bg(), ctx.User, c.Name, key)
	if err != nil {
		return err
	}

	ctx.printf("Added weekly task: %s for week of %s (ID: %s)\n", strings.TrimSpace(c.Name), key, shortID(id))
	return nil
}

type WeeklyEditCmd struct {
	ID   string `arg:"" help:"Task ID, ID prefix or name."`
	Name string `arg:"" help:"New name."`
	Week string `short:"w" help:"Any day of the task's week (default: this week)."`
}

func (c *WeeklyEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	week, err := weekOf(ctx, c.Week)
	if err != nil {
		return err
	}
	task, err := findWeeklyTask(ctx, week, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateWeeklyTask(ctx.bg(), ctx.User, task.ID, models.WeeklyTaskPatch{Name: &c.Name}); err != nil {
		return err
	}

	ctx.printf("Renamed weekly task %q to %q\n", task.Name, strings.TrimSpace(c.Name))
	return nil
}

type WeeklyDeleteCmd struct {
	ID   string `arg:"" help:"Task ID, ID prefix or name."`
	Week string `short:"w" help:"Any day of the task's week (default: this week)."`
}

func (c *WeeklyDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	week, err := weekOf(ctx, c.Week)
	if err != nil {
		return err
	}
	task, err := findWeeklyTask(ctx, week, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteWeeklyTask(ctx.bg(), ctx.User, task.ID); err != nil {
		return err
	}

	ctx.printf("Deleted weekly task: %s\n", task.Name)
	return nil
}

type WeeklyToggleCmd struct {
	ID   string `arg:"" help:"Task ID, ID prefix or name."`
	Date string `short:"d" help:"Day to toggle in YYYY-MM-DD format (default: today)."`
}

func (c *WeeklyToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}
	key := calendar.FormatDateKey(day)

	task, err := findWeeklyTask(ctx, calendar.StartOfWeek(day), c.ID)
	if err != nil {
		return err
	}
	if !task.AppliesOn(key) {
		return fmt.Errorf("%w: %s is outside the week of %s", validation.ErrOutOfRange, key, task.WeekStartDate)
	}

	done := !task.CompletedOn(key)
	patch := models.WeeklyTaskPatch{Completions: models.Completions{key: done}}
	if err := ctx.Store.UpdateWeeklyTask(ctx.bg(), ctx.User, task.ID, patch); err != nil {
		return err
	}

	if done {
		ctx.printf("Marked weekly task %q for %s\n", task.Name, key)
	} else {
		ctx.printf("Unmarked weekly task %q for %s\n", task.Name, key)
	}
	return nil
}

type WeeklyListCmd struct {
	Week string `short:"w" help:"Any day of the week in YYYY-MM-DD format (default: this week)."`
}

func (c *WeeklyListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	week, err := weekOf(ctx, c.Week)
	if err != nil {
		return err
	}

	tasks, err := ctx.Store.ListWeeklyTasks(ctx.bg(), ctx.User, calendar.FormatDateKey(week))
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		ctx.println("No weekly tasks found.")
		return nil
	}

	days := calendar.DaysInCurrentWeek(week)
	ctx.printf("Week of %s\n", calendar.FormatDisplayDate(week))
	ctx.printf("%-8s  %-20s  %s\n", "ID", "Task", weekHeader(days))

	for _, t := range tasks {
		ctx.printf("%-8s  %-20s  %s\n", shortID(t.ID), truncate(t.Name, 20), weekMarks(t, days))
	}
	return nil
}
