package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qualitygate/qualitygate/internal/domain"
)

const noCommit = "·······"

// RenderHistory lists recorded gate results oldest first, with the change
// from the previous run and a summary line.
func RenderHistory(entries []domain.ScoreEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No score history recorded yet. Run score with --record.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Score History") + "\n")
	b.WriteString("  " + divider(56) + "\n\n")

	passed, best := 0, entries[0]
	for i, e := range entries {
		if e.Passed {
			passed++
		}
		if e.FinalScore > best.FinalScore {
			best = e
		}

		line := fmt.Sprintf("  %s  %s  %s %s  %s",
			dimStyle.Render(day(e.Timestamp)),
			faintStyle.Render(shortHash(e.CommitHash)),
			lipgloss.NewStyle().Foreground(gateColor(float64(e.FinalScore))).Render(fmt.Sprintf("%3d/100", e.FinalScore)),
			dimStyle.Render(fmt.Sprintf("(≥%d)", e.Threshold)),
			verdictWord(e.Passed),
		)
		if i > 0 {
			line += trend(e.FinalScore - entries[i-1].FinalScore)
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render(fmt.Sprintf(
		"%d runs · %d passed · best %d on %s", len(entries), passed, best.FinalScore, day(best.Timestamp),
	)))
	return b.String()
}

func verdictWord(passed bool) string {
	if passed {
		return passStyle.Render("pass")
	}
	return failStyle.Render("fail")
}

func trend(diff int) string {
	switch {
	case diff > 0:
		return "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
	case diff < 0:
		return "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
	default:
		return ""
	}
}

func shortHash(h string) string {
	switch {
	case h == "":
		return noCommit
	case len(h) > 7:
		return h[:7]
	default:
		return h
	}
}

// day trims an RFC 3339 timestamp to its date.
func day(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
