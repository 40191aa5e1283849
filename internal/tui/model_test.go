package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/tui/components/habitgrid"
)

const testUser = "alice"

var testNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.Local)

func setupTestModel(t *testing.T, habits ...string) (Model, storage.Provider) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	for _, name := range habits {
		if _, err := store.CreateHabit(context.Background(), testUser, name); err != nil {
			t.Fatalf("CreateHabit() failed: %v", err)
		}
	}

	m := NewModel(store, testUser)
	m.now = func() time.Time { return testNow }
	m.ref = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.Local)
	return reload(t, m), store
}

// reload runs the snapshot load synchronously.
func reload(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.load()()
	if e, ok := msg.(errMsg); ok {
		t.Fatalf("load failed: %v", e.err)
	}
	return update(m, msg)
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// apply sends msg and runs the resulting command once.
func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	if cmd == nil {
		return next.(Model), nil
	}
	return next.(Model), cmd()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCycling(t *testing.T) {
	m, _ := setupTestModel(t)

	for _, want := range []SessionState{StateTasks, StateDashboard, StateFocus, StateHabits} {
		m = update(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != want {
			t.Fatalf("state = %d, want %d", m.state, want)
		}
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateFocus {
		t.Errorf("shift+tab from habits should wrap to focus, got %d", m.state)
	}
}

func TestDashboardStreakIgnoresTasks(t *testing.T) {
	m, store := setupTestModel(t, "Read")
	ctx := context.Background()

	habits, err := store.ListHabits(ctx, testUser)
	if err != nil {
		t.Fatalf("ListHabits() failed: %v", err)
	}
	done := models.Completions{"2026-10-13": true, "2026-10-14": true, "2026-10-15": true}
	if err := store.UpdateHabit(ctx, testUser, habits[0].ID, models.HabitPatch{Completions: done}); err != nil {
		t.Fatalf("UpdateHabit() failed: %v", err)
	}
	if _, err := store.CreateDailyTask(ctx, testUser, "Call the bank", "2026-10-14"); err != nil {
		t.Fatalf("CreateDailyTask() failed: %v", err)
	}

	m = update(reload(t, m), tea.WindowSizeMsg{Width: 120, Height: 80})
	view := m.dashboard.View()
	for _, want := range []string{"3 day(s)", "✓ 3-Day Sprout", "Tasks this week", "0/1", "(this week)"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard is missing %q:\n%s", want, view)
		}
	}
}

func TestTabsShowUser(t *testing.T) {
	m, _ := setupTestModel(t)
	if !strings.Contains(m.viewTabs(), "@"+testUser) {
		t.Errorf("tabs should name the user: %q", m.viewTabs())
	}

	m.user = constants.AnonymousUserID
	if strings.Contains(m.viewTabs(), "@") {
		t.Errorf("anonymous user should not be shown: %q", m.viewTabs())
	}
}

func TestShiftPeriod(t *testing.T) {
	m, _ := setupTestModel(t)

	m = update(m, runes("]"))
	if got := m.ref.Format("2006-01-02"); got != "2026-11-01" {
		t.Errorf("next month on the habit grid = %s, want 2026-11-01", got)
	}

	m = update(m, runes("t"))
	m.state = StateTasks
	m = update(m, runes("["))
	if got := m.ref.Format("2006-01-02"); got != "2026-10-08" {
		t.Errorf("previous week = %s, want 2026-10-08", got)
	}
}

func TestSnapshotFeedsGrid(t *testing.T) {
	m, _ := setupTestModel(t, "Read", "Stretch")

	h, day, ok := m.habitGrid.Selected()
	if !ok || h.Name != "Read" || day != "2026-10-15" {
		t.Errorf("Selected() = %q %s %v", h.Name, day, ok)
	}
	if len(m.snapshot.Habits) != 2 {
		t.Errorf("snapshot has %d habits, want 2", len(m.snapshot.Habits))
	}
}

func TestToggleHabitWritesCompletion(t *testing.T) {
	m, store := setupTestModel(t, "Read")
	h := m.snapshot.Habits[0]

	m, msg := apply(t, m, habitgrid.ToggleHabitMsg{ID: h.ID, Key: "2026-10-15"})
	if _, ok := msg.(savedMsg); !ok {
		t.Fatalf("toggle returned %#v", msg)
	}

	habits, err := store.ListHabits(context.Background(), testUser)
	if err != nil {
		t.Fatalf("ListHabits() failed: %v", err)
	}
	if !habits[0].CompletedOn("2026-10-15") {
		t.Fatal("habit should be completed")
	}

	// the next toggle reads the reloaded snapshot and clears the day
	m = reload(t, update(m, msg))
	_, msg = apply(t, m, habitgrid.ToggleHabitMsg{ID: h.ID, Key: "2026-10-15"})
	if _, ok := msg.(savedMsg); !ok {
		t.Fatalf("toggle returned %#v", msg)
	}
	habits, _ = store.ListHabits(context.Background(), testUser)
	if habits[0].CompletedOn("2026-10-15") {
		t.Error("second toggle should clear the completion")
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, store := setupTestModel(t, "Read")
	h := m.snapshot.Habits[0]

	m = update(m, habitgrid.DeleteHabitMsg{Habit: h})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %d, want confirm delete", m.state)
	}

	m = update(m, runes("n"))
	if m.state != StateHabits || m.pending != nil {
		t.Fatalf("n should cancel, state = %d", m.state)
	}

	m = update(m, habitgrid.DeleteHabitMsg{Habit: h})
	m, msg := apply(t, m, runes("y"))
	if _, ok := msg.(savedMsg); !ok {
		t.Fatalf("confirm returned %#v", msg)
	}
	if m.state != StateHabits {
		t.Errorf("state = %d after delete, want habits", m.state)
	}

	habits, _ := store.ListHabits(context.Background(), testUser)
	if len(habits) != 0 {
		t.Errorf("habit should be deleted, have %d", len(habits))
	}
}

func TestAddOpensForm(t *testing.T) {
	m, _ := setupTestModel(t)

	m = update(m, habitgrid.AddHabitMsg{})
	if m.state != StateEditing || m.form == nil || m.edit.kind != kindHabit {
		t.Fatalf("add should open the habit form, state = %d", m.state)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateHabits || m.form != nil {
		t.Errorf("esc should close the form, state = %d", m.state)
	}
}

func TestSubmitCreatesItems(t *testing.T) {
	m, store := setupTestModel(t)
	ctx := context.Background()

	if _, ok := m.submit(editForm{kind: kindHabit, Name: "Read"})().(savedMsg); !ok {
		t.Fatal("habit submit failed")
	}
	if _, ok := m.submit(editForm{kind: kindDailyTask, Name: "Pay rent", Date: "2026-10-16"})().(savedMsg); !ok {
		t.Fatal("task submit failed")
	}
	if _, ok := m.submit(editForm{kind: kindWeeklyTask, Name: "Laundry"})().(savedMsg); !ok {
		t.Fatal("weekly submit failed")
	}

	habits, _ := store.ListHabits(ctx, testUser)
	tasks, _ := store.ListDailyTasks(ctx, testUser, "2026-10-16", "2026-10-16")
	weekly, _ := store.ListWeeklyTasks(ctx, testUser, "2026-10-12")
	if len(habits) != 1 || len(tasks) != 1 || len(weekly) != 1 {
		t.Errorf("got %d habits, %d tasks, %d weekly tasks", len(habits), len(tasks), len(weekly))
	}

	// short names fail in the store as well as in the form
	msg := m.submit(editForm{kind: kindHabit, Name: "x"})()
	if _, ok := msg.(errMsg); !ok {
		t.Errorf("short name returned %#v", msg)
	}
}

func TestLogSession(t *testing.T) {
	m, store := setupTestModel(t)

	msg := m.logSession(models.FocusSession{CompletedAt: testNow, DurationMin: 25})()
	if s, ok := msg.(savedMsg); !ok || s.status != "Focus session logged" {
		t.Fatalf("logSession returned %#v", msg)
	}

	sessions, err := store.ListFocusSessions(context.Background(), testUser, testNow.Add(-time.Hour), testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListFocusSessions() failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].DurationMin != 25 {
		t.Errorf("unexpected sessions: %+v", sessions)
	}
}

func TestFocusKeys(t *testing.T) {
	m, _ := setupTestModel(t)
	m.state = StateFocus

	m = update(m, runes("s"))
	if !m.timer.Running() {
		t.Fatal("s should start the timer")
	}
	m = update(m, runes("r"))
	if m.timer.Running() {
		t.Error("r should reset and stop the timer")
	}
}

func TestErrorSetsStatus(t *testing.T) {
	m, _ := setupTestModel(t)

	m = update(m, errMsg{err: errors.New("boom")})
	if m.status != "Error: boom" {
		t.Errorf("status = %q", m.status)
	}
}
