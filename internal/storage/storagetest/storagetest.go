// Package storagetest is a behaviour suite every storage.Provider must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/validation"
)

// Factory returns an initialized, loaded provider backed by fresh storage.
type Factory func(t *testing.T) storage.Provider

func ptr[T any](v T) *T { return &v }

// Run executes the suite against providers made by newProvider.
func Run(t *testing.T, newProvider Factory) {
	tests := []struct {
		name string
		fn   func(*testing.T, storage.Provider)
	}{
		{"HabitLifecycle", testHabitLifecycle},
		{"HabitPatchMerges", testHabitPatchMerges},
		{"HabitValidation", testHabitValidation},
		{"UsersAreIsolated", testUsersAreIsolated},
		{"DailyTasks", testDailyTasks},
		{"WeeklyTasks", testWeeklyTasks},
		{"WeeklyTasksInRange", testWeeklyTasksInRange},
		{"FocusSessions", testFocusSessions},
		{"Snapshot", testSnapshot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newProvider(t))
		})
	}
}

func testHabitLifecycle(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	habits, err := p.ListHabits(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, habits)

	readID, err := p.CreateHabit(ctx, "alice", "  Read  ")
	require.NoError(t, err)
	walkID, err := p.CreateHabit(ctx, "alice", "Walk")
	require.NoError(t, err)
	assert.NotEqual(t, readID, walkID)

	habits, err = p.ListHabits(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, "Read", habits[0].Name)
	assert.Equal(t, "alice", habits[0].UserID)
	assert.NotNil(t, habits[0].Completions)
	assert.Empty(t, habits[0].Completions)
	assert.False(t, habits[0].CreatedAt.IsZero())

	require.NoError(t, p.UpdateHabit(ctx, "alice", readID, models.HabitPatch{Name: ptr("Read fiction")}))
	require.NoError(t, p.DeleteHabit(ctx, "alice", walkID))

	habits, err = p.ListHabits(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Read fiction", habits[0].Name)

	err = p.DeleteHabit(ctx, "alice", walkID)
	assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	err = p.UpdateHabit(ctx, "alice", "missing", models.HabitPatch{Name: ptr("Nope")})
	assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
}

func testHabitPatchMerges(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	id, err := p.CreateHabit(ctx, "alice", "Read")
	require.NoError(t, err)

	require.NoError(t, p.UpdateHabit(ctx, "alice", id, models.HabitPatch{Completions: models.Completions{"2026-10-14": true}}))
	require.NoError(t, p.UpdateHabit(ctx, "alice", id, models.HabitPatch{Completions: models.Completions{"2026-10-15": true}}))
	require.NoError(t, p.UpdateHabit(ctx, "alice", id, models.HabitPatch{Completions: models.Completions{"2026-10-14": false}}))

	habits, err := p.ListHabits(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, models.Completions{"2026-10-14": false, "2026-10-15": true}, habits[0].Completions)
	assert.Equal(t, "Read", habits[0].Name)
}

func testHabitValidation(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	_, err := p.CreateHabit(ctx, "alice", " x ")
	assert.True(t, errors.Is(err, validation.ErrNameTooShort), "got %v", err)

	id, err := p.CreateHabit(ctx, "alice", "Read")
	require.NoError(t, err)

	err = p.UpdateHabit(ctx, "alice", id, models.HabitPatch{Completions: models.Completions{"2026-10-1": true}})
	assert.True(t, errors.Is(err, validation.ErrInvalidDateKey), "got %v", err)
	err = p.UpdateHabit(ctx, "alice", id, models.HabitPatch{Name: ptr("R")})
	assert.True(t, errors.Is(err, validation.ErrNameTooShort), "got %v", err)

	habits, err := p.ListHabits(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, habits[0].Completions)
}

func testUsersAreIsolated(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	id, err := p.CreateHabit(ctx, "alice", "Read")
	require.NoError(t, err)
	_, err = p.CreateHabit(ctx, "bob", "Swim")
	require.NoError(t, err)

	habits, err := p.ListHabits(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Swim", habits[0].Name)

	err = p.DeleteHabit(ctx, "bob", id)
	assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	err = p.UpdateHabit(ctx, "bob", id, models.HabitPatch{Completions: models.Completions{"2026-10-15": true}})
	assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
}

func testDailyTasks(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	monID, err := p.CreateDailyTask(ctx, "alice", "Laundry", "2026-10-12")
	require.NoError(t, err)
	_, err = p.CreateDailyTask(ctx, "alice", "Groceries", "2026-10-18")
	require.NoError(t, err)
	_, err = p.CreateDailyTask(ctx, "alice", "Dentist", "2026-10-19")
	require.NoError(t, err)

	_, err = p.CreateDailyTask(ctx, "alice", "Bad date", "2026/10/12")
	assert.True(t, errors.Is(err, validation.ErrInvalidDateKey), "got %v", err)

	tasks, err := p.ListDailyTasks(ctx, "alice", "2026-10-12", "2026-10-18")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Laundry", tasks[0].Name)
	assert.False(t, tasks[0].IsCompleted)

	require.NoError(t, p.UpdateDailyTask(ctx, "alice", monID, models.DailyTaskPatch{IsCompleted: ptr(true)}))
	require.NoError(t, p.UpdateDailyTask(ctx, "alice", monID, models.DailyTaskPatch{Name: ptr("Laundry and ironing")}))

	tasks, err = p.ListDailyTasks(ctx, "alice", "2026-10-12", "2026-10-12")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].IsCompleted)
	assert.Equal(t, "Laundry and ironing", tasks[0].Name)
	assert.Equal(t, "2026-10-12", tasks[0].Date)

	require.NoError(t, p.DeleteDailyTask(ctx, "alice", monID))
	err = p.DeleteDailyTask(ctx, "alice", monID)
	assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)

	_, err = p.ListDailyTasks(ctx, "alice", "yesterday", "2026-10-12")
	assert.True(t, errors.Is(err, validation.ErrInvalidDateKey), "got %v", err)
}

func testWeeklyTasks(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	_, err := p.CreateWeeklyTask(ctx, "alice", "Meal prep", "2026-10-14")
	assert.True(t, errors.Is(err, validation.ErrNotMonday), "got %v", err)

	id, err := p.CreateWeeklyTask(ctx, "alice", "Meal prep", "2026-10-26")
	require.NoError(t, err)

	require.NoError(t, p.UpdateWeeklyTask(ctx, "alice", id, models.WeeklyTaskPatch{Completions: models.Completions{"2026-10-26": true}}))
	require.NoError(t, p.UpdateWeeklyTask(ctx, "alice", id, models.WeeklyTaskPatch{Completions: models.Completions{"2026-11-01": true}}))

	err = p.UpdateWeeklyTask(ctx, "alice", id, models.WeeklyTaskPatch{Completions: models.Completions{"2026-11-02": true}})
	assert.True(t, errors.Is(err, validation.ErrOutOfRange), "got %v", err)

	tasks, err := p.ListWeeklyTasks(ctx, "alice", "2026-10-26")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.Completions{"2026-10-26": true, "2026-11-01": true}, tasks[0].Completions)

	other, err := p.ListWeeklyTasks(ctx, "alice", "2026-10-19")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, p.DeleteWeeklyTask(ctx, "alice", id))
	err = p.UpdateWeeklyTask(ctx, "alice", id, models.WeeklyTaskPatch{Name: ptr("Gone")})
	assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
}

func testWeeklyTasksInRange(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	for _, week := range []string{"2026-09-28", "2026-10-05", "2026-10-12", "2026-10-19"} {
		_, err := p.CreateWeeklyTask(ctx, "alice", "Review "+week, week)
		require.NoError(t, err)
	}
	id, err := p.CreateWeeklyTask(ctx, "bob", "Review", "2026-10-05")
	require.NoError(t, err)
	require.NoError(t, p.UpdateWeeklyTask(ctx, "bob", id, models.WeeklyTaskPatch{Completions: models.Completions{"2026-10-06": true}}))

	tasks, err := p.ListWeeklyTasksInRange(ctx, "alice", "2026-10-05", "2026-10-12")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "2026-10-05", tasks[0].WeekStartDate)
	assert.Equal(t, "2026-10-12", tasks[1].WeekStartDate)
	assert.Empty(t, tasks[0].Completions)

	tasks, err = p.ListWeeklyTasksInRange(ctx, "bob", "2026-09-28", "2026-10-31")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.Completions{"2026-10-06": true}, tasks[0].Completions)

	_, err = p.ListWeeklyTasksInRange(ctx, "alice", "last week", "2026-10-12")
	assert.True(t, errors.Is(err, validation.ErrInvalidDateKey), "got %v", err)
}

func testFocusSessions(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	base := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

	_, err := p.AddFocusSession(ctx, "alice", models.FocusSession{CompletedAt: base, DurationMin: 0})
	assert.True(t, errors.Is(err, validation.ErrOutOfRange), "got %v", err)

	for i, at := range []time.Time{base, base.Add(time.Hour), base.Add(48 * time.Hour)} {
		id, err := p.AddFocusSession(ctx, "alice", models.FocusSession{CompletedAt: at, DurationMin: 25 + i})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	}

	sessions, err := p.ListFocusSessions(ctx, "alice", base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].CompletedAt.Equal(base))
	assert.Equal(t, 25, sessions[0].DurationMin)
	assert.Equal(t, "alice", sessions[0].UserID)

	sessions, err = p.ListFocusSessions(ctx, "bob", base, base.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func testSnapshot(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	_, err := p.CreateHabit(ctx, "alice", "Read")
	require.NoError(t, err)
	_, err = p.CreateDailyTask(ctx, "alice", "Laundry", "2026-10-01")
	require.NoError(t, err)
	_, err = p.CreateDailyTask(ctx, "alice", "Taxes", "2026-11-01")
	require.NoError(t, err)
	_, err = p.CreateWeeklyTask(ctx, "alice", "Meal prep", "2026-09-28")
	require.NoError(t, err)
	_, err = p.CreateWeeklyTask(ctx, "alice", "Clean desk", "2026-10-26")
	require.NoError(t, err)

	from := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC)
	snap, err := storage.LoadSnapshot(ctx, p, "alice", from, to)
	require.NoError(t, err)

	assert.Len(t, snap.Habits, 1)
	assert.Len(t, snap.DailyTasks, 1)
	assert.Len(t, snap.WeeklyTasks, 2)
	assert.Len(t, snap.HabitEntities(), 1)
	assert.Len(t, snap.TaskEntities(), 3)
}
