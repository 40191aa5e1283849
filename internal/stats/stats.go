// Package stats derives completion statistics from habit and task
// snapshots. Every function is pure: inputs are read, never mutated.
package stats

import (
	"fmt"
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/models"
)

// Tier classifies a completion percentage for display.
type Tier string

const (
	TierFull   Tier = "FULL"
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// DayRate is the completion tally for one day.
type DayRate struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// DayPoint is a DayRate labelled for a chart axis.
type DayPoint struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	DayRate
}

// Bucket is the completion total of one week of a month.
type Bucket struct {
	Label     string   `json:"label"`
	Days      []string `json:"days"`
	Completed int      `json:"completed"`
	Current   bool     `json:"current"`
}

// EntityCount is the number of completed days for one entity.
type EntityCount struct {
	ID        string `json:"id"`
	Completed int    `json:"completed"`
}

// Percent rounds 100*completed/total half-up to an integer. It returns 0
// when total is not positive.
func Percent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}

// CompletionTier maps a percentage onto the 100/75/50 tier boundaries.
func CompletionTier(percentage int) Tier {
	switch {
	case percentage >= constants.TierFullThreshold:
		return TierFull
	case percentage >= constants.TierHighThreshold:
		return TierHigh
	case percentage >= constants.TierMediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// probe reads one entity for one day. A nil or misbehaving entity counts as
// not applicable so it cannot abort the pass for the rest.
func probe(e models.Entity, key string) (applies, done bool) {
	if e == nil {
		return false, false
	}
	defer func() {
		if recover() != nil {
			applies, done = false, false
		}
	}()
	if !e.AppliesOn(key) {
		return false, false
	}
	return true, e.CompletedOn(key)
}

// DailyCompletionRate tallies the entities applicable on dayKey.
func DailyCompletionRate(entities []models.Entity, dayKey string) DayRate {
	var rate DayRate
	for _, e := range entities {
		applies, done := probe(e, dayKey)
		if !applies {
			continue
		}
		rate.Total++
		if done {
			rate.Completed++
		}
	}
	rate.Percentage = Percent(rate.Completed, rate.Total)
	return rate
}

func series(entities []models.Entity, days []time.Time, label func(time.Time) string) []DayPoint {
	points := make([]DayPoint, len(days))
	for i, day := range days {
		key := calendar.FormatDateKey(day)
		points[i] = DayPoint{
			Key:     key,
			Label:   label(day),
			DayRate: DailyCompletionRate(entities, key),
		}
	}
	return points
}

// WeeklySeries returns one point per day of ref's week, Monday first.
func WeeklySeries(entities []models.Entity, ref time.Time) []DayPoint {
	return series(entities, calendar.DaysInCurrentWeek(ref), calendar.WeekdayLabel)
}

// TrendSeries returns one point per day of ref's month.
func TrendSeries(entities []models.Entity, ref time.Time) []DayPoint {
	return series(entities, calendar.DaysInMonth(ref), calendar.ShortDateLabel)
}

// AverageRate is the mean of the points' percentages.
func AverageRate(points []DayPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range points {
		sum += p.Percentage
	}
	return float64(sum) / float64(len(points))
}

// MonthlyBucketedTotals sums completions per week bucket of ref's month.
// Every bucket is returned, including empty ones. The bucket holding ref is
// marked current.
func MonthlyBucketedTotals(entities []models.Entity, ref time.Time) []Bucket {
	weeks := calendar.WeeksInMonth(ref)
	current := calendar.WeekIndexInMonth(ref)
	buckets := make([]Bucket, len(weeks))
	for i, week := range weeks {
		b := Bucket{Label: fmt.Sprintf("Week %d", i+1), Current: i == current}
		for _, day := range week {
			key := calendar.FormatDateKey(day)
			b.Days = append(b.Days, key)
			b.Completed += DailyCompletionRate(entities, key).Completed
		}
		buckets[i] = b
	}
	return buckets
}

// NonEmpty drops buckets without completions. It is a display filter.
func NonEmpty(buckets []Bucket) []Bucket {
	var out []Bucket
	for _, b := range buckets {
		if b.Completed > 0 {
			out = append(out, b)
		}
	}
	return out
}

// MonthlyCompletionPercentage is completed (entity, day) pairs over possible
// pairs across ref's month. For habits the possible count is
// len(entities) * days in the month.
func MonthlyCompletionPercentage(entities []models.Entity, ref time.Time) int {
	completed, possible := 0, 0
	for _, day := range calendar.DaysInMonth(ref) {
		rate := DailyCompletionRate(entities, calendar.FormatDateKey(day))
		completed += rate.Completed
		possible += rate.Total
	}
	return Percent(completed, possible)
}

// PerEntityWeekCompletions counts completed days in ref's week per entity,
// in input order.
func PerEntityWeekCompletions(entities []models.Entity, ref time.Time) []EntityCount {
	days := calendar.DaysInCurrentWeek(ref)
	var counts []EntityCount
	for _, e := range entities {
		if e == nil {
			continue
		}
		c := EntityCount{ID: e.EntityID()}
		for _, day := range days {
			if _, done := probe(e, calendar.FormatDateKey(day)); done {
				c.Completed++
			}
		}
		counts = append(counts, c)
	}
	return counts
}
