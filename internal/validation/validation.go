// Package validation checks names, date keys and completion ranges before
// they reach storage, and audits stored data for the validate command.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/models"
)

var (
	ErrNameTooShort   = errors.New("name too short")
	ErrInvalidDateKey = errors.New("invalid date key")
	ErrOutOfRange     = errors.New("completion key out of range")
	ErrNotMonday      = errors.New("week start is not a Monday")
)

// ValidateName trims name and checks its length.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < constants.MinNameLength {
		return "", fmt.Errorf("%w: %q must be at least %d characters", ErrNameTooShort, name, constants.MinNameLength)
	}
	return trimmed, nil
}

// ValidateDateKey checks that key is a canonical YYYY-MM-DD date.
func ValidateDateKey(key string) error {
	if !calendar.IsDateKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return nil
}

// ValidateWeekStart checks that key is a valid date falling on a Monday.
func ValidateWeekStart(key string) error {
	t, err := calendar.ParseDateKey(key, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	if t.Weekday() != time.Monday {
		return fmt.Errorf("%w: %s is a %s", ErrNotMonday, key, t.Weekday())
	}
	return nil
}

// ValidateCompletions checks every key of a habit completion map.
func ValidateCompletions(c models.Completions) error {
	for _, key := range sortedKeys(c) {
		if err := ValidateDateKey(key); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWeekCompletions checks that every key falls in the week starting
// at weekStart.
func ValidateWeekCompletions(weekStart string, c models.Completions) error {
	if err := ValidateWeekStart(weekStart); err != nil {
		return err
	}
	if err := ValidateCompletions(c); err != nil {
		return err
	}
	days := models.WeeklyTask{WeekStartDate: weekStart}.Days()
	for _, key := range sortedKeys(c) {
		if !contains(days, key) {
			return fmt.Errorf("%w: %s is outside the week of %s", ErrOutOfRange, key, weekStart)
		}
	}
	return nil
}

func sortedKeys(c models.Completions) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
