package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/validation"
)

type itemKind int

const (
	kindHabit itemKind = iota
	kindDailyTask
	kindWeeklyTask
)

func (k itemKind) String() string {
	switch k {
	case kindDailyTask:
		return "task"
	case kindWeeklyTask:
		return "weekly task"
	default:
		return "habit"
	}
}

// editForm backs the add and rename forms. An empty id means add.
type editForm struct {
	kind itemKind
	id   string
	Name string
	Date string
}

type pendingDelete struct {
	kind itemKind
	id   string
	name string
}

func validName(s string) error {
	_, err := validation.ValidateName(s)
	return err
}

func newEditForm(fm *editForm) *huh.Form {
	title := "Rename " + fm.kind.String()
	if fm.id == "" {
		title = "New " + fm.kind.String()
	}

	fields := []huh.Field{
		huh.NewInput().
			Title(title).
			Value(&fm.Name).
			Validate(validName),
	}
	if fm.id == "" && fm.kind == kindDailyTask {
		fields = append(fields, huh.NewInput().
			Title("Date (YYYY-MM-DD)").
			Value(&fm.Date).
			Validate(validation.ValidateDateKey))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

func (m *Model) openForm(fm *editForm) tea.Cmd {
	m.edit = fm
	m.form = newEditForm(fm)
	m.lastTab = m.state
	m.state = StateEditing
	return m.form.Init()
}

// submit turns a completed form into a storage write.
func (m Model) submit(fm editForm) tea.Cmd {
	weekStart := calendar.FormatDateKey(calendar.StartOfWeek(m.ref))

	switch {
	case fm.kind == kindHabit && fm.id == "":
		return m.write("Added habit "+fm.Name, func(ctx context.Context, s storage.Provider, user string) error {
			_, err := s.CreateHabit(ctx, user, fm.Name)
			return err
		})
	case fm.kind == kindHabit:
		return m.write("Renamed habit", func(ctx context.Context, s storage.Provider, user string) error {
			return s.UpdateHabit(ctx, user, fm.id, models.HabitPatch{Name: &fm.Name})
		})
	case fm.kind == kindDailyTask && fm.id == "":
		return m.write("Added task "+fm.Name, func(ctx context.Context, s storage.Provider, user string) error {
			_, err := s.CreateDailyTask(ctx, user, fm.Name, fm.Date)
			return err
		})
	case fm.kind == kindDailyTask:
		return m.write("Renamed task", func(ctx context.Context, s storage.Provider, user string) error {
			return s.UpdateDailyTask(ctx, user, fm.id, models.DailyTaskPatch{Name: &fm.Name})
		})
	case fm.id == "":
		return m.write("Added weekly task "+fm.Name, func(ctx context.Context, s storage.Provider, user string) error {
			_, err := s.CreateWeeklyTask(ctx, user, fm.Name, weekStart)
			return err
		})
	default:
		return m.write("Renamed weekly task", func(ctx context.Context, s storage.Provider, user string) error {
			return s.UpdateWeeklyTask(ctx, user, fm.id, models.WeeklyTaskPatch{Name: &fm.Name})
		})
	}
}

func (m Model) remove(p pendingDelete) tea.Cmd {
	return m.write("Deleted "+p.name, func(ctx context.Context, s storage.Provider, user string) error {
		switch p.kind {
		case kindDailyTask:
			return s.DeleteDailyTask(ctx, user, p.id)
		case kindWeeklyTask:
			return s.DeleteWeeklyTask(ctx, user, p.id)
		default:
			return s.DeleteHabit(ctx, user, p.id)
		}
	})
}
