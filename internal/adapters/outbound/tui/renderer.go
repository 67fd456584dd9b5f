// Package tui renders gate results for a terminal.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qualitygate/qualitygate/internal/domain"
)

const barWidth = 20

// metricLine is one row under a category header. A skipped metric does not
// count toward the category.
type metricLine struct {
	name    string
	score   float64
	max     int
	detail  string
	skipped bool
}

type categoryBlock struct {
	name    string
	total   float64
	max     int
	metrics []metricLine
}

// RenderScore formats a gate result: a verdict banner, one block per
// category, then the evidence behind lost points.
func RenderScore(r domain.ScoreReport) string {
	var b strings.Builder

	b.WriteString(banner(r))
	b.WriteString("\n\n")

	for i, cat := range categories(r.Breakdown) {
		if i > 0 {
			b.WriteString("\n")
		}
		writeCategory(&b, cat)
	}
	b.WriteString("\n  " + divider(64) + "\n\n")

	renderIssues(&b, r.Breakdown.CodeQuality)
	renderListSection(&b, "Uncovered Functions", r.Breakdown.TestHealth.Coverage.UncoveredFunctions)
	renderListSection(&b, "Failing Tests", r.Breakdown.TestHealth.Results.Failures)

	b.WriteString("\n")
	return b.String()
}

func banner(r domain.ScoreReport) string {
	verdict := failStyle.Bold(true).Render("FAILED")
	if r.Passed {
		verdict = passStyle.Bold(true).Render("PASSED")
	}
	score := lipgloss.NewStyle().Bold(true).
		Foreground(gateColor(float64(r.FinalScore))).
		Render(fmt.Sprintf("%d / 100", r.FinalScore))
	context := dimStyle.Render(fmt.Sprintf("%d files analyzed · threshold %d", r.FilesCount, r.Threshold))

	return bannerStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		brandStyle.Render("qualitygate"),
		context,
		"",
		score+"  "+verdict,
	))
}

func categories(bd domain.Breakdown) []categoryBlock {
	cq, th, tp := bd.CodeQuality, bd.TestHealth, bd.TestPresence

	unit := metricLine{
		name:   "unit_tests",
		score:  float64(tp.UnitTests.Score),
		max:    tp.UnitTests.Max,
		detail: countDetail(tp.UnitTests.Count, "file", "none found"),
	}
	if tp.UnitTests.Found && tp.UnitTests.Score == 0 {
		unit.detail += ", failing tests"
	}

	e2e := metricLine{name: "e2e_tests", skipped: !tp.E2E.Applicable}
	if !e2e.skipped && tp.E2E.Score != nil && tp.E2E.Max != nil {
		e2e.score = float64(*tp.E2E.Score)
		e2e.max = *tp.E2E.Max
		e2e.detail = countDetail(tp.E2E.Count, "file", "none found")
	}

	return []categoryBlock{
		{name: "code_quality", total: cq.Total, max: cq.Max, metrics: []metricLine{
			{name: "complexity", score: float64(cq.Complexity.Score), max: cq.Complexity.Max, detail: countDetail(cq.Complexity.IssuesCount, "issue", "0 issues")},
			{name: "smells", score: float64(cq.Smells.Score), max: cq.Smells.Max, detail: countDetail(cq.Smells.IssuesCount, "issue", "0 issues")},
			{name: "duplication", score: cq.Duplication.Score, max: cq.Duplication.Max, detail: fmt.Sprintf("%.1f%% duplicated", cq.Duplication.Percentage)},
		}},
		{name: "test_health", total: th.Total, max: th.Max, metrics: []metricLine{
			{name: "coverage", score: float64(th.Coverage.Score), max: th.Coverage.Max, detail: fmt.Sprintf("%.1f%% of %d lines", th.Coverage.Percentage, th.Coverage.TotalLines)},
			{name: "test_results", score: float64(th.Results.Score), max: th.Results.Max, detail: resultsDetail(th.Results)},
		}},
		{name: "test_presence", total: tp.Total, max: tp.Max, metrics: []metricLine{unit, e2e}},
	}
}

func resultsDetail(m domain.ResultsMetric) string {
	s := fmt.Sprintf("%d/%d passed", m.TestsPassed, m.TestsPassed+m.TestsFailed)
	if m.TestsSkipped > 0 {
		s += fmt.Sprintf(", %d skipped", m.TestsSkipped)
	}
	if m.Confidence == domain.ConfidenceLow {
		s += " (parsed heuristically)"
	}
	return s
}

// countDetail pluralizes n units, using none for zero.
func countDetail(n int, unit, none string) string {
	switch n {
	case 0:
		return none
	case 1:
		return "1 " + unit
	default:
		return fmt.Sprintf("%d %ss", n, unit)
	}
}

func writeCategory(b *strings.Builder, cat categoryBlock) {
	pct := percentOf(cat.total, cat.max)
	points := lipgloss.NewStyle().Bold(true).Foreground(gateColor(pct)).Render(formatPoints(cat.total))

	fmt.Fprintf(b, "  %s %s  %s %s\n",
		titleStyle.Render(padRight(cat.name, 20)),
		bar(pct),
		points,
		dimStyle.Render("/ "+strconv.Itoa(cat.max)),
	)
	for _, m := range cat.metrics {
		writeMetric(b, m)
	}
}

func writeMetric(b *strings.Builder, m metricLine) {
	name := padRight(m.name, 34)
	if m.skipped {
		fmt.Fprintf(b, "    %s\n", skipStyle.Render("○ "+name+" not required"))
		return
	}

	dot := lipgloss.NewStyle().Foreground(gateColor(percentOf(m.score, m.max))).Render("●")
	line := fmt.Sprintf("    %s %s %s", dot, name, dimStyle.Render(formatPoints(m.score)+"/"+strconv.Itoa(m.max)))
	if m.detail != "" {
		line += "  " + faintStyle.Render(m.detail)
	}
	b.WriteString(line + "\n")
}

// formatPoints drops the decimal for whole numbers: 40 but 37.5.
func formatPoints(v float64) string {
	return strconv.FormatFloat(domain.Round1(v), 'f', -1, 64)
}

func percentOf(v float64, maxPoints int) float64 {
	if maxPoints <= 0 {
		return 0
	}
	return v * 100 / float64(maxPoints)
}

func bar(pct float64) string {
	filled := int(pct * barWidth / 100)
	filled = max(0, min(filled, barWidth))
	return lipgloss.NewStyle().Foreground(gateColor(pct)).Render(strings.Repeat("█", filled)) +
		faintStyle.Render(strings.Repeat("░", barWidth-filled))
}
