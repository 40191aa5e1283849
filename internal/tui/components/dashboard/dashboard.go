// Package dashboard renders the statistics summary in a scrollable view.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/verdant/internal/stats"
)

const barWidth = 24

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	tierColors = map[stats.Tier]lipgloss.Color{
		stats.TierFull:   lipgloss.Color("42"),
		stats.TierHigh:   lipgloss.Color("77"),
		stats.TierMedium: lipgloss.Color("214"),
		stats.TierLow:    lipgloss.Color("203"),
	}
)

// HabitWeek is one habit's completed days this week.
type HabitWeek struct {
	Name      string
	Completed int
}

// Data is everything the dashboard shows. Summary covers habits only;
// Tasks is the daily and weekly task series for the same week.
type Data struct {
	Summary stats.Summary
	Habits  []HabitWeek
	Tasks   []stats.DayPoint
	Focus   []stats.FocusPoint
}

type Model struct {
	viewport viewport.Model
	data     *Data
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.data == nil {
		return "Loading..."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetData(data Data) {
	m.data = &data
	m.Render()
}

func bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	style := lipgloss.NewStyle().Foreground(tierColors[stats.CompletionTier(pct)])
	return style.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

// Render rebuilds the viewport content from the current data.
func (m *Model) Render() {
	if m.data == nil {
		m.viewport.SetContent("No data loaded.")
		return
	}
	s := m.data.Summary

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.DisplayDate) + "\n\n")

	b.WriteString(fmt.Sprintf("%s %s %3d%%  %d/%d  %s\n",
		labelStyle.Render("Today"), bar(s.Today.Percentage, barWidth), s.Today.Percentage,
		s.Today.Completed, s.Today.Total, mutedStyle.Render(string(s.TodayTier))))
	b.WriteString(fmt.Sprintf("%s %s %3d%%  %s\n",
		labelStyle.Render("This month"), bar(s.MonthPercentage, barWidth), s.MonthPercentage,
		mutedStyle.Render(string(s.MonthTier))))
	b.WriteString(fmt.Sprintf("%s %d day(s)\n\n", labelStyle.Render("Streak"), s.Streak))

	var rewards []string
	for _, r := range s.Rewards {
		mark := "○"
		if r.Achieved {
			mark = "✓"
		}
		rewards = append(rewards, mark+" "+r.Label)
	}
	b.WriteString(strings.Join(rewards, "   ") + "\n\n")

	b.WriteString(titleStyle.Render("This week") + "\n")
	for _, p := range s.Week {
		b.WriteString(fmt.Sprintf("%s %s %3d%%\n", labelStyle.Render(p.Label), bar(p.Percentage, barWidth), p.Percentage))
	}

	if len(m.data.Habits) > 0 {
		b.WriteString("\n" + titleStyle.Render("Habits this week") + "\n")
		for _, h := range m.data.Habits {
			b.WriteString(fmt.Sprintf("%s %s %d/7\n", labelStyle.Render(truncate(h.Name, 11)), bar(h.Completed*100/7, barWidth), h.Completed))
		}
	}

	if hasTasks(m.data.Tasks) {
		b.WriteString("\n" + titleStyle.Render("Tasks this week") + "\n")
		for _, p := range m.data.Tasks {
			b.WriteString(fmt.Sprintf("%s %s %d/%d\n", labelStyle.Render(p.Label), bar(p.Percentage, barWidth), p.Completed, p.Total))
		}
	}

	b.WriteString("\n" + titleStyle.Render("Weeks of the month") + "\n")
	buckets := stats.NonEmpty(s.Month)
	if len(buckets) == 0 {
		b.WriteString(mutedStyle.Render("No completions yet.") + "\n")
	}
	for _, bucket := range buckets {
		line := fmt.Sprintf("%s %d completed", labelStyle.Render(bucket.Label), bucket.Completed)
		if bucket.Current {
			line += " " + mutedStyle.Render("(this week)")
		}
		b.WriteString(line + "\n")
	}

	if len(m.data.Focus) > 0 {
		b.WriteString("\n" + titleStyle.Render("Focus this week") + "\n")
		for _, p := range m.data.Focus {
			b.WriteString(fmt.Sprintf("%s %.2fh\n", labelStyle.Render(p.Label), p.Hours))
		}
	}

	m.viewport.SetContent(b.String())
}

func hasTasks(points []stats.DayPoint) bool {
	for _, p := range points {
		if p.Total > 0 {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
