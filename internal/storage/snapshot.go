package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
)

// Snapshot is everything a user has tracked over a date range, read in one
// go so statistics are computed over a consistent view.
type Snapshot struct {
	Habits      []models.Habit
	DailyTasks  []models.DailyTask
	WeeklyTasks []models.WeeklyTask
}

// HabitEntities returns the habits as statistics entities. Streaks, rewards
// and the monthly figures are computed over habits alone.
func (s Snapshot) HabitEntities() []models.Entity {
	return models.Habits(s.Habits)
}

// TaskEntities returns the daily and weekly tasks as statistics entities.
func (s Snapshot) TaskEntities() []models.Entity {
	return append(models.DailyTasks(s.DailyTasks), models.WeeklyTasks(s.WeeklyTasks)...)
}

// LoadSnapshot reads the habits plus the daily and weekly tasks that touch
// any day between from and to.
func LoadSnapshot(ctx context.Context, p Provider, userID string, from, to time.Time) (Snapshot, error) {
	var snap Snapshot
	var err error

	snap.Habits, err = p.ListHabits(ctx, userID)
	if err != nil {
		return snap, fmt.Errorf("failed to list habits: %w", err)
	}

	snap.DailyTasks, err = p.ListDailyTasks(ctx, userID, calendar.FormatDateKey(from), calendar.FormatDateKey(to))
	if err != nil {
		return snap, fmt.Errorf("failed to list daily tasks: %w", err)
	}

	weekFrom := calendar.FormatDateKey(calendar.StartOfWeek(from))
	snap.WeeklyTasks, err = p.ListWeeklyTasksInRange(ctx, userID, weekFrom, calendar.FormatDateKey(to))
	if err != nil {
		return snap, fmt.Errorf("failed to list weekly tasks: %w", err)
	}
	return snap, nil
}

// EncodeHabits serializes habits in the local snapshot format.
func EncodeHabits(habits []models.Habit) ([]byte, error) {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize habits: %w", err)
	}
	return data, nil
}

// DecodeHabits parses a local habit snapshot. Habits without a completion
// map get an empty one.
func DecodeHabits(data []byte) ([]models.Habit, error) {
	var habits []models.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("failed to parse habits: %w", err)
	}
	for i := range habits {
		if habits[i].Completions == nil {
			habits[i].Completions = models.Completions{}
		}
	}
	return habits, nil
}
