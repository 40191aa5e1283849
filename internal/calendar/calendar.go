// Package calendar partitions the date axis into the day, week and month
// sequences the statistics are computed over. Weeks start on Monday.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/verdant/internal/constants"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	// Sunday is the 7th day of a Monday-start week
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// EndOfWeek returns the Sunday of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return AddDays(StartOfWeek(t), 6)
}

// StartOfMonth returns the 1st of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, normalised to midnight.
// Calendar arithmetic keeps DST transitions from skipping or repeating a day.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns every day of ref's month, from the 1st to the last.
func DaysInMonth(ref time.Time) []time.Time {
	start := StartOfMonth(ref)
	n := EndOfMonth(ref).Day()

	days := make([]time.Time, n)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return days
}

// DaysInCurrentWeek returns Monday through Sunday of the week containing ref.
func DaysInCurrentWeek(ref time.Time) []time.Time {
	start := StartOfWeek(ref)

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return days
}

// WeeksInMonth groups the days of ref's month by calendar week. The first
// bucket may begin mid-week and the last may end mid-week; every day of the
// month lands in exactly one bucket.
func WeeksInMonth(ref time.Time) [][]time.Time {
	var (
		weeks   [][]time.Time
		current []time.Time
	)
	for _, day := range DaysInMonth(ref) {
		if day.Weekday() == time.Monday && len(current) > 0 {
			weeks = append(weeks, current)
			current = nil
		}
		current = append(current, day)
	}
	if len(current) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}

// WeekIndexInMonth returns the index of the bucket in WeeksInMonth(ref)
// that holds ref.
func WeekIndexInMonth(ref time.Time) int {
	key := FormatDateKey(ref)
	for i, week := range WeeksInMonth(ref) {
		for _, day := range week {
			if FormatDateKey(day) == key {
				return i
			}
		}
	}
	return -1
}

// FormatDateKey renders t's calendar day in its own location as YYYY-MM-DD.
func FormatDateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey is the strict inverse of FormatDateKey.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if len(key) != constants.DateKeyLength {
		return time.Time{}, fmt.Errorf("invalid date key %q: expected YYYY-MM-DD", key)
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	if t.Format(constants.DateFormat) != key {
		return time.Time{}, fmt.Errorf("invalid date key %q: not canonical", key)
	}
	return t, nil
}

// IsDateKey reports whether key is a canonical date key.
func IsDateKey(key string) bool {
	_, err := ParseDateKey(key, time.UTC)
	return err == nil
}

// FormatDisplayDate renders t as e.g. "15th October, 2026".
func FormatDisplayDate(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", Ordinal(t.Day()), t.Month(), t.Year())
}

// Ordinal renders n with its English ordinal suffix.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// WeekdayLabel renders the short weekday name ("Mon").
func WeekdayLabel(t time.Time) string {
	return t.Format("Mon")
}

// ShortDateLabel renders the short month and day ("Oct 15").
func ShortDateLabel(t time.Time) string {
	return t.Format("Jan 2")
}

// KeysBetween returns the date keys from start to end inclusive. It returns
// nil when end precedes start.
func KeysBetween(start, end time.Time) []string {
	start, end = StartOfDay(start), StartOfDay(end)
	if end.Before(start) {
		return nil
	}
	var keys []string
	for d := start; !d.After(end); d = AddDays(d, 1) {
		keys = append(keys, FormatDateKey(d))
	}
	return keys
}
