package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/logger"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/pomodoro"
	"github.com/julianstephens/verdant/internal/stats"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/tui/components/dashboard"
	"github.com/julianstephens/verdant/internal/tui/components/habitgrid"
	"github.com/julianstephens/verdant/internal/tui/components/tasklist"
	"github.com/julianstephens/verdant/internal/validation"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateTasks
	StateDashboard
	StateFocus
	StateEditing
	StateConfirmDelete
)

var tabTitles = []string{"Habits", "Week", "Dashboard", "Focus"}

type snapshotMsg struct {
	snap     storage.Snapshot
	sessions []models.FocusSession
}

type savedMsg struct {
	status string
}

type errMsg struct {
	err error
}

type tickMsg time.Time

type Model struct {
	store     storage.Provider
	user      string
	now       func() time.Time
	ref       time.Time
	state     SessionState
	lastTab   SessionState
	keys      KeyMap
	help      help.Model
	habitGrid habitgrid.Model
	taskList  tasklist.Model
	dashboard dashboard.Model
	timer     *pomodoro.Timer
	form      *huh.Form
	edit      *editForm
	pending   *pendingDelete
	snapshot  storage.Snapshot
	status    string
	quitting  bool
	width     int
	height    int

	validationWarning string
}

func NewModel(store storage.Provider, user string) Model {
	return Model{
		store:     store,
		user:      user,
		now:       time.Now,
		ref:       calendar.StartOfDay(time.Now()),
		state:     StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitGrid: habitgrid.New(),
		taskList:  tasklist.New(0, 0),
		dashboard: dashboard.New(0, 0),
		timer:     pomodoro.New(),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHabits:
		keys = append(keys, m.habitGrid.Keys().Bindings()...)
	case StateTasks:
		keys = append(keys, m.taskList.Keys().Bindings()...)
	case StateFocus:
		keys = append(keys, m.keys.Start, m.keys.Reset)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.PrevPeriod, m.keys.NextPeriod, m.keys.Today}

	var actions []key.Binding
	switch m.state {
	case StateHabits:
		actions = m.habitGrid.Keys().Bindings()
	case StateTasks:
		actions = m.taskList.Keys().Bindings()
	case StateFocus:
		actions = []key.Binding{m.keys.Start, m.keys.Reset}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(constants.TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) today() string {
	return calendar.FormatDateKey(m.now())
}

// span is the date range the views need around ref.
func span(ref time.Time) (time.Time, time.Time) {
	from := calendar.StartOfMonth(ref)
	if start := calendar.StartOfWeek(ref); start.Before(from) {
		from = start
	}
	to := calendar.EndOfMonth(ref)
	if end := calendar.EndOfWeek(ref); end.After(to) {
		to = end
	}
	return from, to
}

// load reads a fresh snapshot for the current reference date.
func (m Model) load() tea.Cmd {
	store, user, ref := m.store, m.user, m.ref
	return func() tea.Msg {
		ctx := context.Background()
		from, to := span(ref)

		snap, err := storage.LoadSnapshot(ctx, store, user, calendar.AddDays(from, -constants.StatsLookbackDays), to)
		if err != nil {
			return errMsg{err}
		}
		sessions, err := store.ListFocusSessions(ctx, user, from, calendar.AddDays(to, 1))
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{snap: snap, sessions: sessions}
	}
}

// write runs a storage mutation off the update loop. The view reloads
// once it reports back.
func (m Model) write(status string, fn func(ctx context.Context, store storage.Provider, user string) error) tea.Cmd {
	store, user := m.store, m.user
	return func() tea.Msg {
		if err := fn(context.Background(), store, user); err != nil {
			return errMsg{err}
		}
		return savedMsg{status: status}
	}
}

// applySnapshot pushes the snapshot into every view.
func (m *Model) applySnapshot(msg snapshotMsg) {
	m.snapshot = msg.snap
	refKey := calendar.FormatDateKey(m.ref)
	weekStart := calendar.FormatDateKey(calendar.StartOfWeek(m.ref))
	weekEnd := calendar.FormatDateKey(calendar.EndOfWeek(m.ref))

	m.habitGrid.SetMonth(m.ref, m.today(), msg.snap.Habits)

	var daily []models.DailyTask
	for _, t := range msg.snap.DailyTasks {
		if t.Date >= weekStart && t.Date <= weekEnd {
			daily = append(daily, t)
		}
	}
	var weekly []models.WeeklyTask
	for _, t := range msg.snap.WeeklyTasks {
		if t.WeekStartDate == weekStart {
			weekly = append(weekly, t)
		}
	}
	m.taskList.SetWeek(refKey, daily, weekly)

	entities := msg.snap.HabitEntities()
	var habits []dashboard.HabitWeek
	for i, c := range stats.PerEntityWeekCompletions(entities, m.ref) {
		habits = append(habits, dashboard.HabitWeek{Name: msg.snap.Habits[i].Name, Completed: c.Completed})
	}
	m.dashboard.SetData(dashboard.Data{
		Summary: stats.Summarize(entities, m.ref),
		Habits:  habits,
		Tasks:   stats.WeeklySeries(msg.snap.TaskEntities(), m.ref),
		Focus:   stats.FocusByDay(msg.sessions, calendar.DaysInCurrentWeek(m.ref)),
	})

	m.updateValidationStatus()
}

// updateValidationStatus audits the loaded snapshot
func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateAll(m.snapshot.Habits, m.snapshot.DailyTasks, m.snapshot.WeeklyTasks)
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m *Model) fail(err error) {
	logger.Error("TUI operation failed", "error", err)
	m.status = "Error: " + err.Error()
}
