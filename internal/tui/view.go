package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/identity"
	"github.com/julianstephens/verdant/internal/pomodoro"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = m.viewHabits()
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateDashboard:
		content = docStyle.Render(m.dashboard.View())
	case StateFocus:
		content = m.viewFocus()
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active == StateEditing || active == StateConfirmDelete {
		active = m.lastTab
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, inactiveTabStyle.Render(calendar.FormatDisplayDate(m.ref)))
	if !identity.IsAnonymous(m.user) {
		tabs = append(tabs, inactiveTabStyle.Render("@"+m.user))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHabits() string {
	title := m.ref.Format("January 2006")
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.habitGrid.View()))
}

func (m Model) viewFocus() string {
	state := "paused"
	if m.timer.Running() {
		state = "running"
	}
	hint := fmt.Sprintf("%d min focus, logged when the work phase ends", int(m.timer.FocusDuration().Minutes()))
	if m.timer.Phase() == pomodoro.Break {
		hint = "take a break"
	}

	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.timer.Phase().String(),
			clockStyle.Render(m.timer.Clock()),
			state,
			statusStyle.Render(hint),
		),
	)
}

func (m Model) viewConfirmDelete() string {
	var prompt string
	if m.pending != nil {
		prompt = fmt.Sprintf("Delete %s %q?", m.pending.kind, m.pending.name)
	}
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStatus() string {
	line := statusStyle.Render(m.status)
	if m.validationWarning != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, "  ", warningStyle.Render(m.validationWarning))
	}
	return line
}
