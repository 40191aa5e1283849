package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/stats"
	"github.com/julianstephens/verdant/internal/storage"
)

type StatsCmd struct {
	Day    StatsDayCmd    `cmd:"" help:"Completion rate for a day." default:"1"`
	Week   StatsWeekCmd   `cmd:"" help:"Daily completion rates across a week."`
	Month  StatsMonthCmd  `cmd:"" help:"Weekly totals and completion percentage for a month."`
	Streak StatsStreakCmd `cmd:"" help:"Current streak and reward milestones."`
}

// StatsFlags are shared by every stats command.
type StatsFlags struct {
	Date string `short:"d" help:"Reference date in YYYY-MM-DD format (default: today)."`
	JSON bool   `help:"Print the figures as JSON."`
}

// snapshot loads everything that can affect the statistics of ref: the
// lookback window for streaks through the end of ref's week and month.
func snapshot(ctx *Context, date string) (time.Time, storage.Snapshot, error) {
	if err := ctx.Store.Load(); err != nil {
		return time.Time{}, storage.Snapshot{}, err
	}

	ref, err := ctx.resolveDate(date)
	if err != nil {
		return time.Time{}, storage.Snapshot{}, err
	}

	to := calendar.EndOfMonth(ref)
	if end := calendar.EndOfWeek(ref); end.After(to) {
		to = end
	}
	from := lookback(ref)
	if start := calendar.StartOfMonth(ref); start.Before(from) {
		from = start
	}

	snap, err := storage.LoadSnapshot(ctx.bg(), ctx.Store, ctx.User, from, to)
	if err != nil {
		return time.Time{}, storage.Snapshot{}, err
	}
	return ref, snap, nil
}

// entities picks habits, or the daily and weekly tasks when tasks is set.
func entities(snap storage.Snapshot, tasks bool) []models.Entity {
	if tasks {
		return snap.TaskEntities()
	}
	return snap.HabitEntities()
}

func (c *Context) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(data))
	return nil
}

type StatsDayCmd struct {
	StatsFlags `embed:""`
	Tasks      bool `help:"Report daily and weekly tasks instead of habits."`
}

func (c *StatsDayCmd) Run(ctx *Context) error {
	ref, snap, err := snapshot(ctx, c.Date)
	if err != nil {
		return err
	}

	rate := stats.DailyCompletionRate(entities(snap, c.Tasks), calendar.FormatDateKey(ref))
	if c.JSON {
		return ctx.printJSON(rate)
	}

	ctx.println(headerStyle.Render(calendar.FormatDisplayDate(ref)))
	if rate.Total == 0 {
		ctx.println("Nothing tracked for this day.")
		return nil
	}
	ctx.printf("%s %s  %d/%d (%s)\n", bar(rate.Percentage), tierText(rate.Percentage, fmt.Sprintf("%3d%%", rate.Percentage)),
		rate.Completed, rate.Total, stats.CompletionTier(rate.Percentage))
	return nil
}

type StatsWeekCmd struct {
	StatsFlags `embed:""`
	Tasks      bool `help:"Report daily and weekly tasks instead of habits."`
}

func (c *StatsWeekCmd) Run(ctx *Context) error {
	ref, snap, err := snapshot(ctx, c.Date)
	if err != nil {
		return err
	}

	points := stats.WeeklySeries(entities(snap, c.Tasks), ref)
	if c.JSON {
		return ctx.printJSON(points)
	}

	ctx.println(headerStyle.Render("Week of " + calendar.FormatDisplayDate(calendar.StartOfWeek(ref))))
	for _, p := range points {
		ctx.printf("%s  %s %s  %d/%d\n", p.Label, bar(p.Percentage),
			tierText(p.Percentage, fmt.Sprintf("%3d%%", p.Percentage)), p.Completed, p.Total)
	}
	ctx.printf("Average: %.1f%%\n", stats.AverageRate(points))
	return nil
}

type StatsMonthCmd struct {
	StatsFlags `embed:""`
	All        bool `help:"Include weeks without completions."`
}

type monthReport struct {
	Month      string         `json:"month"`
	Buckets    []stats.Bucket `json:"buckets"`
	Percentage int            `json:"percentage"`
	Tier       stats.Tier     `json:"tier"`
	Average    float64        `json:"average_daily_rate"`
}

func (c *StatsMonthCmd) Run(ctx *Context) error {
	ref, snap, err := snapshot(ctx, c.Date)
	if err != nil {
		return err
	}
	habits := snap.HabitEntities()

	buckets := stats.MonthlyBucketedTotals(habits, ref)
	if !c.All {
		buckets = stats.NonEmpty(buckets)
	}
	pct := stats.MonthlyCompletionPercentage(habits, ref)
	report := monthReport{
		Month:      ref.Format("January 2006"),
		Buckets:    buckets,
		Percentage: pct,
		Tier:       stats.CompletionTier(pct),
		Average:    stats.AverageRate(stats.TrendSeries(habits, ref)),
	}
	if c.JSON {
		return ctx.printJSON(report)
	}

	ctx.println(headerStyle.Render(report.Month))
	if len(buckets) == 0 {
		ctx.println("No completions this month.")
	}
	for _, b := range buckets {
		mark := ""
		if b.Current {
			mark = "  (this week)"
		}
		ctx.printf("%-7s %s to %s  %d completed%s\n", b.Label, b.Days[0], b.Days[len(b.Days)-1], b.Completed, mark)
	}
	ctx.printf("Completion: %s (%s)\n", tierText(pct, fmt.Sprintf("%d%%", pct)), report.Tier)
	ctx.printf("Average daily rate: %.1f%%\n", report.Average)
	return nil
}

type StatsStreakCmd struct {
	StatsFlags `embed:""`
}

type streakReport struct {
	Streak  int            `json:"streak"`
	Rewards []stats.Reward `json:"rewards"`
}

func (c *StatsStreakCmd) Run(ctx *Context) error {
	ref, snap, err := snapshot(ctx, c.Date)
	if err != nil {
		return err
	}

	streak := stats.StreakLength(snap.HabitEntities(), ref)
	report := streakReport{Streak: streak, Rewards: stats.Rewards(streak)}
	if c.JSON {
		return ctx.printJSON(report)
	}

	ctx.printf("Current streak: %d day(s)\n", streak)
	for _, r := range report.Rewards {
		ctx.printf("  %s %s\n", check(r.Achieved), r.Label)
	}
	return nil
}
