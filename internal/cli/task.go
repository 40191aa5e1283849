package cli

import (
	"strings"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
)

// Bounds used when a daily task is looked up by id across all dates.
const (
	firstDateKey = "1970-01-01"
	lastDateKey  = "9999-12-31"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a task for a day."`
	Edit   TaskEditCmd   `cmd:"" help:"Rename a task."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task."`
	Toggle TaskToggleCmd `cmd:"" help:"Toggle a task's completion."`
	List   TaskListCmd   `cmd:"" help:"List tasks for a day or week."`
}

func findDailyTask(ctx *Context, ref string) (models.DailyTask, error) {
	tasks, err := ctx.Store.ListDailyTasks(ctx.bg(), ctx.User, firstDateKey, lastDateKey)
	if err != nil {
		return models.DailyTask{}, err
	}
	for _, t := range tasks {
		if matchID(ref, t.ID, t.Name) {
			return t, nil
		}
	}
	return models.DailyTask{}, storage.NotFound("daily task", ref)
}

type TaskAddCmd struct {
	Name string `arg:"" help:"Task name."`
	Date string `short:"d" help:"Day of the task in YYYY-MM-DD format (default: today)."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}
	key := calendar.FormatDateKey(day)

	id, err := ctx.Store.CreateDailyTask(ctx.bg(), ctx.User, c.Name, key)
	if err != nil {
		return err
	}

	ctx.printf("Added task: %s for %s (ID: %s)\n", strings.TrimSpace(c.Name), key, shortID(id))
	return nil
}

type TaskEditCmd struct {
	ID   string `arg:"" help:"Task ID, ID prefix or name."`
	Name string `arg:"" help:"New name."`
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	task, err := findDailyTask(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateDailyTask(ctx.bg(), ctx.User, task.ID, models.DailyTaskPatch{Name: &c.Name}); err != nil {
		return err
	}

	ctx.printf("Renamed task %q to %q\n", task.Name, strings.TrimSpace(c.Name))
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID, ID prefix or name."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	task, err := findDailyTask(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteDailyTask(ctx.bg(), ctx.User, task.ID); err != nil {
		return err
	}

	ctx.printf("Deleted task: %s\n", task.Name)
	return nil
}

type TaskToggleCmd struct {
	ID string `arg:"" help:"Task ID, ID prefix or name."`
}

func (c *TaskToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	task, err := findDailyTask(ctx, c.ID)
	if err != nil {
		return err
	}

	done := !task.IsCompleted
	if err := ctx.Store.UpdateDailyTask(ctx.bg(), ctx.User, task.ID, models.DailyTaskPatch{IsCompleted: &done}); err != nil {
		return err
	}

	if done {
		ctx.printf("Completed task %q (%s)\n", task.Name, task.Date)
	} else {
		ctx.printf("Reopened task %q (%s)\n", task.Name, task.Date)
	}
	return nil
}

type TaskListCmd struct {
	Date string `short:"d" help:"Day to list in YYYY-MM-DD format (default: today)."`
	Week bool   `short:"w" help:"List the whole Monday-start week containing the day."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	days := []string{calendar.FormatDateKey(day)}
	if c.Week {
		days = calendar.KeysBetween(calendar.StartOfWeek(day), calendar.EndOfWeek(day))
	}

	tasks, err := ctx.Store.ListDailyTasks(ctx.bg(), ctx.User, days[0], days[len(days)-1])
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		ctx.println("No tasks found.")
		return nil
	}

	byDay := make(map[string][]models.DailyTask)
	for _, t := range tasks {
		byDay[t.Date] = append(byDay[t.Date], t)
	}

	for _, key := range days {
		if len(byDay[key]) == 0 {
			continue
		}
		ctx.printf("%s:\n", key)
		for _, t := range byDay[key] {
			ctx.printf("  %s %s  (ID: %s)\n", check(t.IsCompleted), t.Name, shortID(t.ID))
		}
	}
	return nil
}
