package cli

import (
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/stats"
)

type FocusCmd struct {
	Log    FocusLogCmd    `cmd:"" help:"Record a finished focus session."`
	Report FocusReportCmd `cmd:"" help:"Focus hours per day for a week or month."`
}

type FocusLogCmd struct {
	Minutes int `short:"m" help:"Session length in minutes." default:"${focus_minutes}"`
}

func (c *FocusLogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	session := models.FocusSession{
		CompletedAt: ctx.now(),
		DurationMin: c.Minutes,
	}
	if _, err := ctx.Store.AddFocusSession(ctx.bg(), ctx.User, session); err != nil {
		return err
	}

	ctx.printf("Logged a %d minute focus session\n", c.Minutes)
	return nil
}

type FocusReportCmd struct {
	StatsFlags `embed:""`
	Month      bool `short:"m" help:"Report the whole month instead of the week."`
}

func (c *FocusReportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ref, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	days := calendar.DaysInCurrentWeek(ref)
	title := "Focus, week of " + calendar.FormatDisplayDate(days[0])
	if c.Month {
		days = calendar.DaysInMonth(ref)
		title = "Focus, " + ref.Format("January 2006")
	}

	sessions, err := ctx.Store.ListFocusSessions(ctx.bg(), ctx.User, days[0], calendar.AddDays(days[len(days)-1], 1))
	if err != nil {
		return err
	}

	points := stats.FocusByDay(sessions, days)
	if c.JSON {
		return ctx.printJSON(points)
	}

	ctx.println(headerStyle.Render(title))
	total := 0
	for _, p := range points {
		pct := p.Minutes * 100 / constants.FocusDailyGoalMinutes
		ctx.printf("%-6s  %s  %.2fh\n", p.Label, bar(pct), p.Hours)
		total += p.Minutes
	}
	ctx.printf("Total: %s\n", (time.Duration(total) * time.Minute).String())
	return nil
}
