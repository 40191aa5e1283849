package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHabitPatchMergesCompletions(t *testing.T) {
	h := Habit{ID: "h1", Name: "Read", Completions: Completions{"2026-10-14": true}}
	name := "Read daily"

	patched := HabitPatch{
		Name:        &name,
		Completions: Completions{"2026-10-15": true, "2026-10-14": false},
	}.Apply(h)

	assert.Equal(t, "Read daily", patched.Name)
	assert.Equal(t, Completions{"2026-10-14": false, "2026-10-15": true}, patched.Completions)
	// The original is untouched
	assert.Equal(t, Completions{"2026-10-14": true}, h.Completions)
	assert.Equal(t, "Read", h.Name)
}

func TestHabitPatchWithNilCompletions(t *testing.T) {
	h := Habit{ID: "h1", Name: "Read"}
	patched := HabitPatch{Completions: Completions{"2026-10-15": true}}.Apply(h)
	assert.True(t, patched.CompletedOn("2026-10-15"))
	assert.False(t, h.CompletedOn("2026-10-15"))
}

func TestHabitApplicability(t *testing.T) {
	h := Habit{ID: "h1", Completions: Completions{"2026-10-15": true, "garbage": true}}
	assert.True(t, h.AppliesOn("2026-10-16"))
	assert.True(t, h.CompletedOn("2026-10-15"))
	assert.False(t, h.CompletedOn("2026-10-16"))
}

func TestDailyTaskApplicability(t *testing.T) {
	task := DailyTask{ID: "t1", Date: "2026-10-15", IsCompleted: true}
	assert.True(t, task.AppliesOn("2026-10-15"))
	assert.True(t, task.CompletedOn("2026-10-15"))
	assert.False(t, task.AppliesOn("2026-10-16"))
	assert.False(t, task.CompletedOn("2026-10-16"))

	bad := DailyTask{ID: "t2", Date: "15/10/2026", IsCompleted: true}
	assert.False(t, bad.AppliesOn("15/10/2026"))
	assert.False(t, bad.CompletedOn("15/10/2026"))
}

func TestDailyTaskPatch(t *testing.T) {
	done := true
	task := DailyTaskPatch{IsCompleted: &done}.Apply(DailyTask{ID: "t1", Name: "Call mum", Date: "2026-10-15"})
	assert.True(t, task.IsCompleted)
	assert.Equal(t, "Call mum", task.Name)
	assert.Equal(t, "2026-10-15", task.Date)
}

func TestWeeklyTaskDays(t *testing.T) {
	task := WeeklyTask{
		ID:            "w1",
		WeekStartDate: "2026-10-26",
		Completions:   Completions{"2026-10-27": true, "2026-11-03": true},
	}
	assert.Equal(t, []string{
		"2026-10-26", "2026-10-27", "2026-10-28", "2026-10-29",
		"2026-10-30", "2026-10-31", "2026-11-01",
	}, task.Days())

	assert.True(t, task.AppliesOn("2026-11-01"))
	assert.False(t, task.AppliesOn("2026-11-02"))
	assert.True(t, task.CompletedOn("2026-10-27"))
	// Out-of-range completions are never read
	assert.False(t, task.CompletedOn("2026-11-03"))

	assert.Nil(t, WeeklyTask{WeekStartDate: "nope"}.Days())
}

func TestEntityAdapters(t *testing.T) {
	assert.Len(t, Habits([]Habit{{ID: "a"}, {ID: "b"}}), 2)
	assert.Len(t, DailyTasks([]DailyTask{{ID: "a"}}), 1)
	assert.Empty(t, WeeklyTasks(nil))
}
