package stats

import (
	"math"
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
)

// Summary bundles the figures the dashboard shows for a reference date.
type Summary struct {
	Date            string     `json:"date"`
	DisplayDate     string     `json:"display_date"`
	Today           DayRate    `json:"today"`
	TodayTier       Tier       `json:"today_tier"`
	Week            []DayPoint `json:"week"`
	Month           []Bucket   `json:"month"`
	MonthPercentage int        `json:"month_percentage"`
	MonthTier       Tier       `json:"month_tier"`
	Streak          int        `json:"streak"`
	Rewards         []Reward   `json:"rewards"`
}

// Summarize computes every dashboard figure for ref in one pass over the
// same snapshot.
func Summarize(entities []models.Entity, ref time.Time) Summary {
	today := DailyCompletionRate(entities, calendar.FormatDateKey(ref))
	monthPct := MonthlyCompletionPercentage(entities, ref)
	streak := StreakLength(entities, ref)

	return Summary{
		Date:            calendar.FormatDateKey(ref),
		DisplayDate:     calendar.FormatDisplayDate(ref),
		Today:           today,
		TodayTier:       CompletionTier(today.Percentage),
		Week:            WeeklySeries(entities, ref),
		Month:           MonthlyBucketedTotals(entities, ref),
		MonthPercentage: monthPct,
		MonthTier:       CompletionTier(monthPct),
		Streak:          streak,
		Rewards:         Rewards(streak),
	}
}

// FocusPoint is the focus time logged on one day.
type FocusPoint struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Minutes int     `json:"minutes"`
	Hours   float64 `json:"hours"`
}

// FocusByDay totals session minutes onto days. Sessions are placed on the
// calendar day of their completion in each day's location; sessions outside
// days are ignored.
func FocusByDay(sessions []models.FocusSession, days []time.Time) []FocusPoint {
	points := make([]FocusPoint, len(days))
	index := make(map[string]int, len(days))
	for i, day := range days {
		key := calendar.FormatDateKey(day)
		points[i] = FocusPoint{Key: key, Label: calendar.ShortDateLabel(day)}
		index[key] = i
	}
	if len(days) == 0 {
		return points
	}

	loc := days[0].Location()
	for _, s := range sessions {
		if s.DurationMin <= 0 {
			continue
		}
		i, ok := index[calendar.FormatDateKey(s.CompletedAt.In(loc))]
		if !ok {
			continue
		}
		points[i].Minutes += s.DurationMin
	}
	for i := range points {
		points[i].Hours = math.Round(float64(points[i].Minutes)/60*100) / 100
	}
	return points
}
