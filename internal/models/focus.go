package models

import "time"

// FocusSession records one finished pomodoro work interval
type FocusSession struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CompletedAt time.Time `json:"completedAt"`
	DurationMin int       `json:"durationMin"`
}
