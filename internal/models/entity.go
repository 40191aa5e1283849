package models

// Entity is the completion-tracking capability shared by habits and tasks.
// Statistics work over entities without knowing their concrete kind.
type Entity interface {
	EntityID() string
	// AppliesOn reports whether the entity counts toward the given day.
	AppliesOn(key string) bool
	// CompletedOn reports a true completion on the given day.
	CompletedOn(key string) bool
}

// Completions maps date keys (YYYY-MM-DD) to a completion flag. A missing
// key reads as not completed.
type Completions map[string]bool

// Done reports whether key is marked complete.
func (c Completions) Done(key string) bool {
	return c[key]
}

// Clone returns an independent copy.
func (c Completions) Clone() Completions {
	out := make(Completions, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge applies patch on top of c and returns the result. c is not mutated.
func (c Completions) Merge(patch Completions) Completions {
	out := c.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Habits adapts a habit slice to entities.
func Habits(habits []Habit) []Entity {
	out := make([]Entity, len(habits))
	for i, h := range habits {
		out[i] = h
	}
	return out
}

// DailyTasks adapts a daily task slice to entities.
func DailyTasks(tasks []DailyTask) []Entity {
	out := make([]Entity, len(tasks))
	for i, t := range tasks {
		out[i] = t
	}
	return out
}

// WeeklyTasks adapts a weekly task slice to entities.
func WeeklyTasks(tasks []WeeklyTask) []Entity {
	out := make([]Entity, len(tasks))
	for i, t := range tasks {
		out[i] = t
	}
	return out
}

// trueKeys lists the keys of c marked complete.
func (c Completions) trueKeys() []string {
	var keys []string
	for k, v := range c {
		if v {
			keys = append(keys, k)
		}
	}
	return keys
}
