// Package tasklist shows the daily and weekly tasks of one week.
package tasklist

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
)

type AddTaskMsg struct {
	Weekly bool
}

type EditTaskMsg struct {
	Item Item
}

type DeleteTaskMsg struct {
	Item Item
}

// ToggleTaskMsg flips a daily task, or a weekly task on Key.
type ToggleTaskMsg struct {
	Item Item
	Key  string
}

// Item is either a daily or a weekly task.
type Item struct {
	Daily  *models.DailyTask
	Weekly *models.WeeklyTask
	today  string
}

func (i Item) ID() string {
	if i.Weekly != nil {
		return i.Weekly.ID
	}
	return i.Daily.ID
}

func (i Item) Name() string {
	if i.Weekly != nil {
		return i.Weekly.Name
	}
	return i.Daily.Name
}

func (i Item) Title() string {
	var done bool
	if i.Weekly != nil {
		done = i.Weekly.CompletedOn(i.today)
	} else {
		done = i.Daily.IsCompleted
	}
	if done {
		return "✓ " + i.Name()
	}
	return "○ " + i.Name()
}

func (i Item) Description() string {
	if i.Weekly != nil {
		count := 0
		for _, d := range i.Weekly.Days() {
			if i.Weekly.CompletedOn(d) {
				count++
			}
		}
		return fmt.Sprintf("weekly | %d/7 days", count)
	}
	day, err := calendar.ParseDateKey(i.Daily.Date, time.Local)
	if err != nil {
		return i.Daily.Date
	}
	return day.Format("Mon Jan 2")
}

func (i Item) FilterValue() string { return i.Name() }

type KeyMap struct {
	Add       key.Binding
	AddWeekly key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Delete    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		AddWeekly: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "add weekly"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Add, k.AddWeekly, k.Toggle, k.Edit, k.Delete}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	today string
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	return Model{list: l, keys: DefaultKeyMap()}
}

// SetWeek shows the weekly tasks first, then the daily tasks by date.
// today is the day weekly tasks are toggled on.
func (m *Model) SetWeek(today string, daily []models.DailyTask, weekly []models.WeeklyTask) {
	m.today = today

	sorted := append([]models.DailyTask(nil), daily...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	items := make([]list.Item, 0, len(weekly)+len(sorted))
	for i := range weekly {
		items = append(items, Item{Weekly: &weekly[i], today: today})
	}
	for i := range sorted {
		items = append(items, Item{Daily: &sorted[i], today: today})
	}
	m.list.SetItems(items)
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.AddWeekly):
			return m, func() tea.Msg { return AddTaskMsg{Weekly: true} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				day := m.today
				if i.Daily != nil {
					day = i.Daily.Date
				}
				return m, func() tea.Msg { return ToggleTaskMsg{Item: i, Key: day} }
			}
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditTaskMsg{Item: i} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{Item: i} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks this week.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
