package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/verdant/internal/stats"
)

const barWidth = 20

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	tierStyles = map[stats.Tier]lipgloss.Style{
		stats.TierFull:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		stats.TierHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("77")),
		stats.TierMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		stats.TierLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
)

func tierText(pct int, s string) string {
	return tierStyles[stats.CompletionTier(pct)].Render(s)
}

// bar renders pct as a fixed-width bar coloured by its tier.
func bar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * barWidth / 100
	return tierText(pct, strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}
