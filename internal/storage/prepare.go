package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/validation"
)

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// Now is the clock used for created_at stamps.
var Now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// NotFound wraps ErrNotFound with the record kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %w: %s", kind, ErrNotFound, id)
}

// PrepareHabitPatch validates a habit patch and returns it with a trimmed
// name.
func PrepareHabitPatch(p models.HabitPatch) (models.HabitPatch, error) {
	if p.Name != nil {
		name, err := validation.ValidateName(*p.Name)
		if err != nil {
			return p, err
		}
		p.Name = &name
	}
	if err := validation.ValidateCompletions(p.Completions); err != nil {
		return p, err
	}
	return p, nil
}

// PrepareDailyTaskPatch validates a daily task patch.
func PrepareDailyTaskPatch(p models.DailyTaskPatch) (models.DailyTaskPatch, error) {
	if p.Name != nil {
		name, err := validation.ValidateName(*p.Name)
		if err != nil {
			return p, err
		}
		p.Name = &name
	}
	return p, nil
}

// PrepareWeeklyTaskPatch validates a weekly task patch against the week the
// task belongs to.
func PrepareWeeklyTaskPatch(weekStart string, p models.WeeklyTaskPatch) (models.WeeklyTaskPatch, error) {
	if p.Name != nil {
		name, err := validation.ValidateName(*p.Name)
		if err != nil {
			return p, err
		}
		p.Name = &name
	}
	if err := validation.ValidateWeekCompletions(weekStart, p.Completions); err != nil {
		return p, err
	}
	return p, nil
}

// PrepareFocusSession validates a session and fills in its id and
// timestamp when missing.
func PrepareFocusSession(userID string, s models.FocusSession) (models.FocusSession, error) {
	if s.DurationMin <= 0 {
		return s, fmt.Errorf("%w: focus duration must be positive, got %d", validation.ErrOutOfRange, s.DurationMin)
	}
	if s.ID == "" {
		s.ID = NewID()
	}
	if s.CompletedAt.IsZero() {
		s.CompletedAt = Now()
	}
	s.CompletedAt = s.CompletedAt.UTC().Truncate(time.Microsecond)
	s.UserID = userID
	return s, nil
}

// NewHabit validates name and builds an empty habit.
func NewHabit(userID, name string) (models.Habit, error) {
	trimmed, err := validation.ValidateName(name)
	if err != nil {
		return models.Habit{}, err
	}
	return models.Habit{
		ID:          NewID(),
		UserID:      userID,
		Name:        trimmed,
		Completions: models.Completions{},
		CreatedAt:   Now(),
	}, nil
}

// NewDailyTask validates its inputs and builds an open daily task.
func NewDailyTask(userID, name, date string) (models.DailyTask, error) {
	trimmed, err := validation.ValidateName(name)
	if err != nil {
		return models.DailyTask{}, err
	}
	if err := validation.ValidateDateKey(date); err != nil {
		return models.DailyTask{}, err
	}
	return models.DailyTask{
		ID:        NewID(),
		UserID:    userID,
		Name:      trimmed,
		Date:      date,
		CreatedAt: Now(),
	}, nil
}

// NewWeeklyTask validates its inputs and builds a weekly task with no
// completions.
func NewWeeklyTask(userID, name, weekStart string) (models.WeeklyTask, error) {
	trimmed, err := validation.ValidateName(name)
	if err != nil {
		return models.WeeklyTask{}, err
	}
	if err := validation.ValidateWeekStart(weekStart); err != nil {
		return models.WeeklyTask{}, err
	}
	return models.WeeklyTask{
		ID:            NewID(),
		UserID:        userID,
		Name:          trimmed,
		WeekStartDate: weekStart,
		Completions:   models.Completions{},
		CreatedAt:     Now(),
	}, nil
}

// CheckRange validates an inclusive date key range.
func CheckRange(from, to string) error {
	if err := validation.ValidateDateKey(from); err != nil {
		return err
	}
	return validation.ValidateDateKey(to)
}
