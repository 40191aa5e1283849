// Package habitgrid renders a month of habits as a grid of day cells
// grouped by Monday-start week.
package habitgrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/models"
)

const nameWidth = 18

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	todayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	nameStyle   = lipgloss.NewStyle().Width(nameWidth).MaxWidth(nameWidth)
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID  string
	Key string
}

type EditHabitMsg struct {
	Habit models.Habit
}

type DeleteHabitMsg struct {
	Habit models.Habit
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
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
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete}
}

type Model struct {
	habits []models.Habit
	weeks  [][]time.Time
	days   []time.Time
	today  string
	row    int
	col    int
	keys   KeyMap
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

// SetMonth loads the habits for ref's month. The cursor stays on its row
// and moves to today when today is in the month.
func (m *Model) SetMonth(ref time.Time, today string, habits []models.Habit) {
	sameMonth := len(m.days) > 0 && m.days[0].Month() == ref.Month() && m.days[0].Year() == ref.Year()

	m.habits = habits
	m.weeks = calendar.WeeksInMonth(ref)
	m.days = calendar.DaysInMonth(ref)
	m.today = today

	if !sameMonth {
		m.col = 0
		for i, d := range m.days {
			if calendar.FormatDateKey(d) == today {
				m.col = i
			}
		}
	}
	m.clamp()
}

func (m *Model) clamp() {
	if m.row >= len(m.habits) {
		m.row = len(m.habits) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.col >= len(m.days) {
		m.col = len(m.days) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
}

// Selected returns the habit and day key under the cursor.
func (m Model) Selected() (models.Habit, string, bool) {
	if len(m.habits) == 0 || len(m.days) == 0 {
		return models.Habit{}, "", false
	}
	return m.habits[m.row], calendar.FormatDateKey(m.days[m.col]), true
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.row--
	case key.Matches(keyMsg, m.keys.Down):
		m.row++
	case key.Matches(keyMsg, m.keys.Left):
		m.col--
	case key.Matches(keyMsg, m.keys.Right):
		m.col++
	case key.Matches(keyMsg, m.keys.Add):
		return m, func() tea.Msg { return AddHabitMsg{} }
	case key.Matches(keyMsg, m.keys.Toggle):
		if h, day, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ToggleHabitMsg{ID: h.ID, Key: day} }
		}
	case key.Matches(keyMsg, m.keys.Edit):
		if h, _, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditHabitMsg{Habit: h} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if h, _, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteHabitMsg{Habit: h} }
		}
	}
	m.clamp()
	return m, nil
}

func (m Model) View() string {
	if len(m.habits) == 0 {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())

	for r, h := range m.habits {
		b.WriteString(nameStyle.Render(h.Name))
		done := 0
		i := 0
		for _, week := range m.weeks {
			b.WriteString(" ")
			for _, d := range week {
				cell := emptyStyle.Render("·")
				if h.CompletedOn(calendar.FormatDateKey(d)) {
					cell = doneStyle.Render("■")
					done++
				}
				if r == m.row && i == m.col {
					cell = cursorStyle.Render(cell)
				}
				b.WriteString(" " + cell)
				i++
			}
		}
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %d/%d", done, len(m.days))))
		b.WriteString("\n")
	}
	return b.String()
}

// viewHeader renders the week labels over the day numbers.
func (m Model) viewHeader() string {
	var weeks, days strings.Builder
	weeks.WriteString(strings.Repeat(" ", nameWidth))
	days.WriteString(strings.Repeat(" ", nameWidth))

	for i, week := range m.weeks {
		width := 1 + 2*len(week)
		label := fmt.Sprintf("W%d", i+1)
		weeks.WriteString(fmt.Sprintf("%-*s", width, " "+label))

		days.WriteString(" ")
		for _, d := range week {
			// single-column day numbers keep the grid narrow
			num := fmt.Sprintf("%d", d.Day()%10)
			if calendar.FormatDateKey(d) == m.today {
				num = todayStyle.Render(num)
			} else {
				num = headerStyle.Render(num)
			}
			days.WriteString(" " + num)
		}
	}
	return headerStyle.Render(weeks.String()) + "\n" + days.String() + "\n"
}
