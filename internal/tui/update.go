package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/tui/components/habitgrid"
	"github.com/julianstephens/verdant/internal/tui/components/tasklist"
)

const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.taskList.SetSize(msg.Width-4, msg.Height-chromeHeight)
		m.dashboard.SetSize(msg.Width-4, msg.Height-chromeHeight)
		return m, nil

	case snapshotMsg:
		m.applySnapshot(msg)
		return m, nil

	case savedMsg:
		m.status = msg.status
		return m, m.load()

	case errMsg:
		m.fail(msg.err)
		return m, m.load()

	case tickMsg:
		return m, m.handleTick(time.Time(msg))
	}

	switch m.state {
	case StateEditing:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if cmd, ok := m.handleComponentMsg(msg); ok {
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(keyMsg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(keyMsg, m.keys.PrevPeriod):
			return m, m.shift(-1)
		case key.Matches(keyMsg, m.keys.NextPeriod):
			return m, m.shift(1)
		case key.Matches(keyMsg, m.keys.Today):
			m.ref = calendar.StartOfDay(m.now())
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitGrid, cmd = m.habitGrid.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case StateFocus:
		cmd = m.updateFocus(msg)
	}
	return m, cmd
}

// shift moves the reference date by one period of the current tab: a month
// on the habit grid, a week elsewhere.
func (m *Model) shift(n int) tea.Cmd {
	if m.state == StateHabits {
		first := calendar.StartOfMonth(m.ref)
		m.ref = time.Date(first.Year(), first.Month()+time.Month(n), 1, 0, 0, 0, 0, first.Location())
	} else {
		m.ref = calendar.AddDays(m.ref, 7*n)
	}
	return m.load()
}

func (m *Model) handleTick(now time.Time) tea.Cmd {
	session := m.timer.Tick(constants.TickInterval, now)
	if session == nil {
		return tick()
	}
	return tea.Batch(tick(), m.logSession(*session))
}

func (m Model) logSession(s models.FocusSession) tea.Cmd {
	return m.write("Focus session logged", func(ctx context.Context, store storage.Provider, user string) error {
		_, err := store.AddFocusSession(ctx, user, s)
		return err
	})
}

func (m *Model) updateFocus(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Start):
		m.timer.Toggle()
	case key.Matches(keyMsg, m.keys.Reset):
		m.timer.Reset()
	}
	return nil
}

// handleComponentMsg reacts to the intents the tab components emit.
func (m *Model) handleComponentMsg(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case habitgrid.AddHabitMsg:
		return m.openForm(&editForm{kind: kindHabit}), true

	case habitgrid.EditHabitMsg:
		return m.openForm(&editForm{kind: kindHabit, id: msg.Habit.ID, Name: msg.Habit.Name}), true

	case habitgrid.DeleteHabitMsg:
		m.confirmDelete(pendingDelete{kind: kindHabit, id: msg.Habit.ID, name: msg.Habit.Name})
		return nil, true

	case habitgrid.ToggleHabitMsg:
		done := !m.habitDone(msg.ID, msg.Key)
		patch := models.HabitPatch{Completions: models.Completions{msg.Key: done}}
		return m.write("Updated "+msg.Key, func(ctx context.Context, s storage.Provider, user string) error {
			return s.UpdateHabit(ctx, user, msg.ID, patch)
		}), true

	case tasklist.AddTaskMsg:
		if msg.Weekly {
			return m.openForm(&editForm{kind: kindWeeklyTask}), true
		}
		return m.openForm(&editForm{kind: kindDailyTask, Date: calendar.FormatDateKey(m.ref)}), true

	case tasklist.EditTaskMsg:
		kind := kindDailyTask
		if msg.Item.Weekly != nil {
			kind = kindWeeklyTask
		}
		return m.openForm(&editForm{kind: kind, id: msg.Item.ID(), Name: msg.Item.Name()}), true

	case tasklist.DeleteTaskMsg:
		kind := kindDailyTask
		if msg.Item.Weekly != nil {
			kind = kindWeeklyTask
		}
		m.confirmDelete(pendingDelete{kind: kind, id: msg.Item.ID(), name: msg.Item.Name()})
		return nil, true

	case tasklist.ToggleTaskMsg:
		if w := msg.Item.Weekly; w != nil {
			patch := models.WeeklyTaskPatch{Completions: models.Completions{msg.Key: !w.CompletedOn(msg.Key)}}
			return m.write("Updated "+w.Name, func(ctx context.Context, s storage.Provider, user string) error {
				return s.UpdateWeeklyTask(ctx, user, w.ID, patch)
			}), true
		}
		d := msg.Item.Daily
		done := !d.IsCompleted
		return m.write("Updated "+d.Name, func(ctx context.Context, s storage.Provider, user string) error {
			return s.UpdateDailyTask(ctx, user, d.ID, models.DailyTaskPatch{IsCompleted: &done})
		}), true
	}
	return nil, false
}

func (m Model) habitDone(id, day string) bool {
	for _, h := range m.snapshot.Habits {
		if h.ID == id {
			return h.CompletedOn(day)
		}
	}
	return false
}

func (m *Model) confirmDelete(p pendingDelete) {
	m.pending = &p
	m.lastTab = m.state
	m.state = StateConfirmDelete
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.lastTab
		m.form, m.edit = nil, nil
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		cmds = append(cmds, m.submit(*m.edit))
		m.state = m.lastTab
		m.form, m.edit = nil, nil
	case huh.StateAborted:
		m.state = m.lastTab
		m.form, m.edit = nil, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		cmd := m.remove(*m.pending)
		m.pending = nil
		m.state = m.lastTab
		return m, cmd
	case "n", "N", "esc", "q":
		m.pending = nil
		m.state = m.lastTab
	}
	return m, nil
}
