// Package pomodoro implements the focus timer: a work interval followed by a
// break, repeating while the timer runs.
package pomodoro

import (
	"fmt"
	"time"

	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/models"
)

type Phase int

const (
	Work Phase = iota
	Break
)

func (p Phase) String() string {
	if p == Break {
		return "Break Time"
	}
	return "Pomodoro Timer"
}

// Timer is not safe for concurrent use; the TUI drives it from its update
// loop only.
type Timer struct {
	focus     time.Duration
	brk       time.Duration
	phase     Phase
	remaining time.Duration
	running   bool
}

func New() *Timer {
	return NewWithDurations(constants.FocusMinutes*time.Minute, constants.BreakMinutes*time.Minute)
}

func NewWithDurations(focus, brk time.Duration) *Timer {
	t := &Timer{focus: focus, brk: brk}
	t.Reset()
	return t
}

func (t *Timer) Phase() Phase                 { return t.phase }
func (t *Timer) Running() bool                { return t.running }
func (t *Timer) Remaining() time.Duration     { return t.remaining }
func (t *Timer) FocusDuration() time.Duration { return t.focus }

// Toggle starts or pauses the countdown.
func (t *Timer) Toggle() {
	t.running = !t.running
}

// Reset stops the timer and returns to a full work interval.
func (t *Timer) Reset() {
	t.running = false
	t.phase = Work
	t.remaining = t.focus
}

// Tick advances a running timer by elapsed. When the current interval runs
// out the timer switches phase and keeps running. A finished work interval
// is returned as a session completed at now; otherwise the session is nil.
func (t *Timer) Tick(elapsed time.Duration, now time.Time) *models.FocusSession {
	if !t.running || elapsed <= 0 {
		return nil
	}
	if elapsed < t.remaining {
		t.remaining -= elapsed
		return nil
	}

	var session *models.FocusSession
	if t.phase == Work {
		session = &models.FocusSession{
			CompletedAt: now,
			DurationMin: int(t.focus / time.Minute),
		}
		t.phase = Break
		t.remaining = t.brk
	} else {
		t.phase = Work
		t.remaining = t.focus
	}
	return session
}

// Clock renders the remaining time as MM:SS.
func (t *Timer) Clock() string {
	secs := int(t.remaining.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
