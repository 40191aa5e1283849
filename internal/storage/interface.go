package storage

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/verdant/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider persists habits, tasks and focus sessions per user. All list
// results are ordered by creation time.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	ListHabits(ctx context.Context, userID string) ([]models.Habit, error)
	CreateHabit(ctx context.Context, userID, name string) (string, error)
	UpdateHabit(ctx context.Context, userID, id string, patch models.HabitPatch) error
	DeleteHabit(ctx context.Context, userID, id string) error

	// Daily tasks; from and to are inclusive date keys
	ListDailyTasks(ctx context.Context, userID, from, to string) ([]models.DailyTask, error)
	CreateDailyTask(ctx context.Context, userID, name, date string) (string, error)
	UpdateDailyTask(ctx context.Context, userID, id string, patch models.DailyTaskPatch) error
	DeleteDailyTask(ctx context.Context, userID, id string) error

	// Weekly tasks; the range form returns tasks whose week starts between
	// from and to inclusive
	ListWeeklyTasks(ctx context.Context, userID, weekStart string) ([]models.WeeklyTask, error)
	ListWeeklyTasksInRange(ctx context.Context, userID, from, to string) ([]models.WeeklyTask, error)
	CreateWeeklyTask(ctx context.Context, userID, name, weekStart string) (string, error)
	UpdateWeeklyTask(ctx context.Context, userID, id string, patch models.WeeklyTaskPatch) error
	DeleteWeeklyTask(ctx context.Context, userID, id string) error

	// Focus sessions; the range is half-open [from, to)
	AddFocusSession(ctx context.Context, userID string, session models.FocusSession) (string, error)
	ListFocusSessions(ctx context.Context, userID string, from, to time.Time) ([]models.FocusSession, error)

	// Utils
	GetConfigPath() string
}
