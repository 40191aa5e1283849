package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
)

var today = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC) // Thursday

func daysBack(ref time.Time, n int) models.Completions {
	c := models.Completions{}
	for i := 0; i < n; i++ {
		c[calendar.FormatDateKey(calendar.AddDays(ref, -i))] = true
	}
	return c
}

func habit(id string, c models.Completions) models.Habit {
	return models.Habit{ID: id, Name: "habit " + id, Completions: c}
}

type alwaysDone struct{ since string }

func (a alwaysDone) EntityID() string { return "always" }
func (a alwaysDone) AppliesOn(string) bool { return true }
func (a alwaysDone) CompletedOn(string) bool { return true }
func (a alwaysDone) CompletionKeys() []string { return []string{a.since} }

type broken struct{}

func (broken) EntityID() string { return "broken" }
func (broken) AppliesOn(string) bool { panic("corrupt entity") }
func (broken) CompletedOn(string) bool { panic("corrupt entity") }

func TestPercent(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 5, 0},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{49, 100, 49},
		{50, 100, 50},
		{7, 7, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}

func TestCompletionTier(t *testing.T) {
	tests := []struct {
		pct  int
		want Tier
	}{
		{100, TierFull},
		{99, TierHigh},
		{75, TierHigh},
		{74, TierMedium},
		{50, TierMedium},
		{49, TierLow},
		{0, TierLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionTier(tt.pct), "%d%%", tt.pct)
	}
}

func TestDailyCompletionRateEmpty(t *testing.T) {
	assert.Equal(t, DayRate{}, DailyCompletionRate(nil, "2026-10-15"))
	assert.Equal(t, DayRate{}, DailyCompletionRate([]models.Entity{}, "not-a-key"))
}

func TestDailyCompletionRateThreeOfFour(t *testing.T) {
	key := calendar.FormatDateKey(today)
	habits := []models.Habit{
		habit("a", models.Completions{key: true}),
		habit("b", models.Completions{key: true}),
		habit("c", models.Completions{key: true}),
		habit("d", models.Completions{key: false}),
	}

	rate := DailyCompletionRate(models.Habits(habits), key)
	assert.Equal(t, DayRate{Completed: 3, Total: 4, Percentage: 75}, rate)
	assert.Equal(t, TierHigh, CompletionTier(rate.Percentage))
}

func TestDailyCompletionRateDailyTasks(t *testing.T) {
	tasks := []models.DailyTask{
		{ID: "1", Date: "2026-10-15", IsCompleted: true},
		{ID: "2", Date: "2026-10-15", IsCompleted: false},
		{ID: "3", Date: "2026-10-16", IsCompleted: true},
	}

	rate := DailyCompletionRate(models.DailyTasks(tasks), "2026-10-15")
	assert.Equal(t, DayRate{Completed: 1, Total: 2, Percentage: 50}, rate)

	rate = DailyCompletionRate(models.DailyTasks(tasks), "2026-10-17")
	assert.Equal(t, DayRate{}, rate)
}

func TestDailyCompletionRateSkipsBadEntities(t *testing.T) {
	key := calendar.FormatDateKey(today)
	entities := []models.Entity{
		nil,
		broken{},
		habit("a", models.Completions{key: true}),
		habit("b", models.Completions{"garbage": true}),
	}

	assert.Equal(t, DayRate{Completed: 1, Total: 2, Percentage: 50}, DailyCompletionRate(entities, key))
}

func TestWeeklySeries(t *testing.T) {
	h := habit("a", models.Completions{"2026-10-12": true, "2026-10-15": true, "2026-10-19": true})
	points := WeeklySeries(models.Habits([]models.Habit{h, habit("b", nil)}), today)

	require.Len(t, points, 7)
	assert.Equal(t, "Mon", points[0].Label)
	assert.Equal(t, "2026-10-12", points[0].Key)
	assert.Equal(t, 50, points[0].Percentage)
	assert.Equal(t, "Sun", points[6].Label)
	assert.Equal(t, "2026-10-18", points[6].Key)
	assert.Equal(t, DayRate{Completed: 1, Total: 2, Percentage: 50}, points[3].DayRate)
	assert.Equal(t, 0, points[1].Percentage)
}

func TestMonthlyBucketedTotals(t *testing.T) {
	habits := []models.Habit{
		habit("a", models.Completions{"2026-10-01": true, "2026-10-04": true, "2026-10-30": true}),
		habit("b", models.Completions{"2026-10-02": true, "2026-09-30": true}),
	}

	buckets := MonthlyBucketedTotals(models.Habits(habits), today)
	require.Len(t, buckets, 5)
	assert.Equal(t, "Week 1", buckets[0].Label)
	assert.Equal(t, 3, buckets[0].Completed)
	assert.Equal(t, []string{"2026-10-01", "2026-10-02", "2026-10-03", "2026-10-04"}, buckets[0].Days)
	assert.Equal(t, 0, buckets[1].Completed)
	assert.Equal(t, 1, buckets[4].Completed)
	assert.True(t, buckets[2].Current)
	assert.False(t, buckets[0].Current)

	visible := NonEmpty(buckets)
	require.Len(t, visible, 2)
	assert.Equal(t, "Week 5", visible[1].Label)

	total := 0
	for _, b := range buckets {
		total += b.Completed
	}
	assert.Equal(t, 4, total)
}

func TestMonthlyCompletionPercentage(t *testing.T) {
	// October has 31 days; two habits give 62 possible completions.
	full := habit("a", models.Completions{})
	for _, d := range calendar.DaysInMonth(today) {
		full.Completions[calendar.FormatDateKey(d)] = true
	}
	empty := habit("b", models.Completions{})

	pct := MonthlyCompletionPercentage(models.Habits([]models.Habit{full, empty}), today)
	assert.Equal(t, 50, pct)
	assert.Equal(t, TierMedium, CompletionTier(pct))

	assert.Equal(t, 0, MonthlyCompletionPercentage(nil, today))
	assert.Equal(t, TierLow, CompletionTier(Percent(49, 100)))
}

func TestMonthlyCompletionPercentageFortyNine(t *testing.T) {
	// April has 30 days; ten habits give 300 possible completions, 147 of
	// which are done.
	ref := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	days := calendar.DaysInMonth(ref)
	var habits []models.Habit
	remaining := 147
	for i := 0; i < 10; i++ {
		h := habit(string(rune('a'+i)), models.Completions{})
		for _, d := range days {
			if remaining == 0 {
				break
			}
			h.Completions[calendar.FormatDateKey(d)] = true
			remaining--
		}
		habits = append(habits, h)
	}

	pct := MonthlyCompletionPercentage(models.Habits(habits), ref)
	assert.Equal(t, 49, pct)
	assert.Equal(t, TierLow, CompletionTier(pct))
}

func TestStreakLengthEmpty(t *testing.T) {
	assert.Equal(t, 0, StreakLength(nil, today))
	assert.Equal(t, 0, StreakLength(models.Habits([]models.Habit{habit("a", nil)}), today))
}

func TestStreakLengthLimitedByWeakestHabit(t *testing.T) {
	a := habit("a", daysBack(today, 5))
	b := habit("b", daysBack(today, 3))
	b.Completions[calendar.FormatDateKey(calendar.AddDays(today, -3))] = false

	assert.Equal(t, 3, StreakLength(models.Habits([]models.Habit{a, b}), today))
}

func TestStreakLengthTodayPending(t *testing.T) {
	yesterday := calendar.AddDays(today, -1)
	a := habit("a", daysBack(yesterday, 4))
	b := habit("b", daysBack(today, 6))

	assert.Equal(t, 4, StreakLength(models.Habits([]models.Habit{a, b}), today))
}

func TestStreakLengthBrokenYesterday(t *testing.T) {
	a := habit("a", models.Completions{
		calendar.FormatDateKey(calendar.AddDays(today, -2)): true,
		calendar.FormatDateKey(calendar.AddDays(today, -3)): true,
	})
	assert.Equal(t, 0, StreakLength(models.Habits([]models.Habit{a}), today))
}

func TestStreakLengthBoundedOnAlwaysCompleteData(t *testing.T) {
	entities := []models.Entity{alwaysDone{since: "2026-10-01"}}
	assert.Equal(t, 15, StreakLength(entities, today))
}

func TestStreakLengthAcrossMonthBoundary(t *testing.T) {
	ref := time.Date(2026, time.November, 2, 0, 0, 0, 0, time.UTC)
	a := habit("a", daysBack(ref, 10))
	assert.Equal(t, 10, StreakLength(models.Habits([]models.Habit{a}), ref))
}

func TestRewards(t *testing.T) {
	rewards := Rewards(7)
	require.Len(t, rewards, 3)
	assert.True(t, rewards[0].Achieved)
	assert.True(t, rewards[1].Achieved)
	assert.False(t, rewards[2].Achieved)
	assert.Equal(t, "30-Day Forest", rewards[2].Label)

	for _, r := range Rewards(0) {
		assert.False(t, r.Achieved)
	}
}

func TestPerEntityWeekCompletions(t *testing.T) {
	a := habit("a", models.Completions{"2026-10-12": true, "2026-10-13": true, "2026-10-20": true})
	b := habit("b", nil)

	counts := PerEntityWeekCompletions(models.Habits([]models.Habit{a, b}), today)
	assert.Equal(t, []EntityCount{{ID: "a", Completed: 2}, {ID: "b", Completed: 0}}, counts)
}

func TestTrendSeriesAndAverage(t *testing.T) {
	a := habit("a", models.Completions{"2026-10-01": true, "2026-10-02": true})
	points := TrendSeries(models.Habits([]models.Habit{a}), today)

	require.Len(t, points, 31)
	assert.Equal(t, "Oct 1", points[0].Label)
	assert.Equal(t, 100, points[0].Percentage)
	assert.InDelta(t, 200.0/31.0, AverageRate(points), 0.0001)
	assert.Zero(t, AverageRate(nil))
}

func TestSummarize(t *testing.T) {
	key := calendar.FormatDateKey(today)
	habits := []models.Habit{
		habit("a", daysBack(today, 3)),
		habit("b", models.Completions{key: true}),
	}

	s := Summarize(models.Habits(habits), today)
	assert.Equal(t, "2026-10-15", s.Date)
	assert.Equal(t, "15th October, 2026", s.DisplayDate)
	assert.Equal(t, DayRate{Completed: 2, Total: 2, Percentage: 100}, s.Today)
	assert.Equal(t, TierFull, s.TodayTier)
	assert.Equal(t, 1, s.Streak)
	assert.Len(t, s.Week, 7)
	assert.Len(t, s.Month, 5)
	assert.Equal(t, Percent(4, 62), s.MonthPercentage)
	assert.Equal(t, TierLow, s.MonthTier)
}

func TestFocusByDay(t *testing.T) {
	days := calendar.DaysInCurrentWeek(today)
	sessions := []models.FocusSession{
		{ID: "1", CompletedAt: time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC), DurationMin: 25},
		{ID: "2", CompletedAt: time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC), DurationMin: 25},
		{ID: "3", CompletedAt: time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC), DurationMin: 50},
		{ID: "4", CompletedAt: time.Date(2026, time.October, 25, 9, 0, 0, 0, time.UTC), DurationMin: 25},
		{ID: "5", CompletedAt: time.Date(2026, time.October, 13, 9, 0, 0, 0, time.UTC), DurationMin: 0},
	}

	points := FocusByDay(sessions, days)
	require.Len(t, points, 7)
	assert.Equal(t, 50, points[0].Minutes)
	assert.Equal(t, 0.83, points[0].Hours)
	assert.Equal(t, 0, points[1].Minutes)
	assert.Equal(t, 50, points[3].Minutes)
	assert.Empty(t, FocusByDay(sessions, nil))
}
