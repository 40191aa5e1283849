package pomodoro

import (
	"testing"
	"time"
)

var now = time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)

func TestNewTimer(t *testing.T) {
	timer := New()
	if timer.Phase() != Work {
		t.Errorf("expected work phase, got %v", timer.Phase())
	}
	if timer.Running() {
		t.Error("new timer should be paused")
	}
	if got := timer.Clock(); got != "25:00" {
		t.Errorf("Clock() = %s, want 25:00", got)
	}
}

func TestTickWhilePaused(t *testing.T) {
	timer := New()
	if s := timer.Tick(time.Minute, now); s != nil {
		t.Error("paused timer should not finish a session")
	}
	if timer.Remaining() != 25*time.Minute {
		t.Errorf("paused timer advanced to %v", timer.Remaining())
	}
}

func TestPhaseTransitions(t *testing.T) {
	timer := NewWithDurations(3*time.Second, 2*time.Second)
	timer.Toggle()

	for i := 0; i < 2; i++ {
		if s := timer.Tick(time.Second, now); s != nil {
			t.Fatalf("tick %d finished early", i)
		}
	}
	if got := timer.Clock(); got != "00:01" {
		t.Errorf("Clock() = %s, want 00:01", got)
	}

	session := timer.Tick(time.Second, now)
	if session == nil {
		t.Fatal("expected a finished work session")
	}
	if !session.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", session.CompletedAt, now)
	}
	if timer.Phase() != Break || !timer.Running() {
		t.Errorf("expected running break, got %v running=%v", timer.Phase(), timer.Running())
	}
	if timer.Remaining() != 2*time.Second {
		t.Errorf("break should start full, got %v", timer.Remaining())
	}

	timer.Tick(time.Second, now)
	if s := timer.Tick(time.Second, now); s != nil {
		t.Error("finishing a break should not produce a session")
	}
	if timer.Phase() != Work || timer.Remaining() != 3*time.Second {
		t.Errorf("expected a fresh work interval, got %v %v", timer.Phase(), timer.Remaining())
	}
}

func TestSessionDuration(t *testing.T) {
	timer := New()
	timer.Toggle()
	session := timer.Tick(25*time.Minute, now)
	if session == nil {
		t.Fatal("expected session")
	}
	if session.DurationMin != 25 {
		t.Errorf("DurationMin = %d, want 25", session.DurationMin)
	}
	if got := timer.Clock(); got != "05:00" {
		t.Errorf("Clock() = %s, want 05:00", got)
	}
}

func TestToggleAndReset(t *testing.T) {
	timer := New()
	timer.Toggle()
	timer.Tick(25*time.Minute, now)
	timer.Tick(time.Minute, now)

	timer.Toggle()
	if timer.Running() {
		t.Error("Toggle should pause a running timer")
	}

	timer.Reset()
	if timer.Phase() != Work || timer.Running() || timer.Clock() != "25:00" {
		t.Errorf("Reset left %v running=%v %s", timer.Phase(), timer.Running(), timer.Clock())
	}
}

func TestPhaseString(t *testing.T) {
	if Work.String() != "Pomodoro Timer" || Break.String() != "Break Time" {
		t.Errorf("unexpected labels %q %q", Work, Break)
	}
}
