package models

import "time"

// Habit represents a recurring practice tracked every day
type Habit struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	Completions Completions `json:"completions"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (h Habit) EntityID() string { return h.ID }

// AppliesOn is true for every day; habits are tracked daily.
func (h Habit) AppliesOn(key string) bool { return true }

func (h Habit) CompletedOn(key string) bool { return h.Completions.Done(key) }

// HabitPatch is a partial update. Nil fields are left untouched and
// Completions entries are merged key by key.
type HabitPatch struct {
	Name        *string
	Completions Completions
}

// Apply returns h with the patch applied.
func (p HabitPatch) Apply(h Habit) Habit {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if len(p.Completions) > 0 {
		h.Completions = h.Completions.Merge(p.Completions)
	}
	return h
}

// CompletionKeys lists the days the habit was completed, unordered.
func (h Habit) CompletionKeys() []string { return h.Completions.trueKeys() }
