package models

import (
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
)

// DailyTask is a single-occurrence task bound to one calendar day
type DailyTask struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Date        string    `json:"date"` // YYYY-MM-DD format
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t DailyTask) EntityID() string { return t.ID }

func (t DailyTask) AppliesOn(key string) bool { return t.Date == key && calendar.IsDateKey(key) }

func (t DailyTask) CompletedOn(key string) bool { return t.AppliesOn(key) && t.IsCompleted }

// DailyTaskPatch is a partial update. The date is immutable.
type DailyTaskPatch struct {
	Name        *string
	IsCompleted *bool
}

func (p DailyTaskPatch) Apply(t DailyTask) DailyTask {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	return t
}

// WeeklyTask recurs on each day of a single Monday-start week
type WeeklyTask struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Name          string      `json:"name"`
	WeekStartDate string      `json:"weekStartDate"` // Monday, YYYY-MM-DD format
	Completions   Completions `json:"completions"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func (t WeeklyTask) EntityID() string { return t.ID }

// Days returns the seven date keys of the task's week, or nil when the
// week start is not a valid date key.
func (t WeeklyTask) Days() []string {
	start, err := calendar.ParseDateKey(t.WeekStartDate, time.UTC)
	if err != nil {
		return nil
	}
	return calendar.KeysBetween(start, calendar.AddDays(start, 6))
}

func (t WeeklyTask) AppliesOn(key string) bool {
	for _, d := range t.Days() {
		if d == key {
			return true
		}
	}
	return false
}

func (t WeeklyTask) CompletedOn(key string) bool {
	return t.AppliesOn(key) && t.Completions.Done(key)
}

// WeeklyTaskPatch mirrors HabitPatch for weekly tasks.
type WeeklyTaskPatch struct {
	Name        *string
	Completions Completions
}

func (p WeeklyTaskPatch) Apply(t WeeklyTask) WeeklyTask {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if len(p.Completions) > 0 {
		t.Completions = t.Completions.Merge(p.Completions)
	}
	return t
}

func (t DailyTask) CompletionKeys() []string {
	if !t.IsCompleted {
		return nil
	}
	return []string{t.Date}
}

func (t WeeklyTask) CompletionKeys() []string { return t.Completions.trueKeys() }
