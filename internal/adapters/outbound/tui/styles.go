package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#0EA5E9")
	ink     = lipgloss.Color("#E2E8F0")
	muted   = lipgloss.Color("#64748B")
	rule    = lipgloss.Color("#334155")
	good    = lipgloss.Color("#10B981")
	fair    = lipgloss.Color("#EAB308")
	poor    = lipgloss.Color("#F43F5E")
	notUsed = lipgloss.Color("#475569")
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(0, 3).
			Align(lipgloss.Center).
			Width(64)

	brandStyle         = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle           = lipgloss.NewStyle().Foreground(muted)
	faintStyle         = lipgloss.NewStyle().Foreground(rule)
	passStyle          = lipgloss.NewStyle().Foreground(good)
	failStyle          = lipgloss.NewStyle().Foreground(poor)
	warnStyle          = lipgloss.NewStyle().Foreground(fair)
	skipStyle          = lipgloss.NewStyle().Foreground(notUsed)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(ink)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	listItemStyle      = lipgloss.NewStyle().Foreground(fair)
	hintStyle          = lipgloss.NewStyle().Foreground(muted).Italic(true)
)

// gateColor grades a percentage with the same bands as the PR comment markers.
func gateColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 80:
		return good
	case pct >= 60:
		return fair
	default:
		return poor
	}
}

func divider(width int) string {
	return faintStyle.Render(strings.Repeat("─", width))
}

// padRight pads by display width, so styled or wide text lines up.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
