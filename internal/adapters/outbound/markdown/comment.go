// Package markdown renders a score report as a pull request comment.
package markdown

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// Preview limits for the comment. They are smaller than the report's own
// evidence lists so the comment stays readable.
const (
	maxIssueRows    = 5
	maxDuplications = 3
	maxCoverageRows = 10
	maxUncovered    = 10
	maxFailures     = 5
	maxPathLen      = 40
)

// RenderComment writes the pull request comment for r. generatedAt is
// printed in the footer in UTC.
func RenderComment(w io.Writer, r domain.ScoreReport, generatedAt time.Time) error {
	var b strings.Builder
	bd := r.Breakdown
	cq, th, tp := bd.CodeQuality, bd.TestHealth, bd.TestPresence

	b.WriteString("## 🔍 Code Quality Report\n\n")
	overall := "❌ " + fmt.Sprintf("Below threshold (%d)", r.Threshold)
	if r.Passed {
		overall = "✅ Pass"
	}
	writeTable(&b, []string{"Category", "Score", "Status"}, [][]string{
		{"**Overall**", fmt.Sprintf("**%d/100**", r.FinalScore), overall},
	})
	b.WriteString("---\n\n")

	// Code quality
	fmt.Fprintf(&b, "### 📊 Code Quality (%s/%d)\n\n", points(cq.Total), cq.Max)
	writeTable(&b, []string{"Metric", "Score", "Status"}, [][]string{
		metricRow("Complexity", float64(cq.Complexity.Score), cq.Complexity.Max),
		metricRow("Code Smells", float64(cq.Smells.Score), cq.Smells.Max),
		metricRow("Duplication", cq.Duplication.Score, cq.Duplication.Max),
	})
	writeComplexity(&b, cq.Complexity)
	writeSmells(&b, cq.Smells)
	writeDuplication(&b, cq.Duplication)
	b.WriteString("---\n\n")

	// Test health
	fmt.Fprintf(&b, "### 🧪 Test Health (%s/%d)\n\n", points(th.Total), th.Max)
	writeTable(&b, []string{"Metric", "Value", "Score", "Status"}, [][]string{
		{
			"Coverage (changed files)",
			fmt.Sprintf("%.1f%%", th.Coverage.Percentage),
			fmt.Sprintf("%d/%d", th.Coverage.Score, th.Coverage.Max),
			statusMarker(float64(th.Coverage.Score), th.Coverage.Max),
		},
		{
			"Tests Passing",
			fmt.Sprintf("%d/%d", th.Results.TestsPassed, th.Results.TestsRun),
			fmt.Sprintf("%d/%d", th.Results.Score, th.Results.Max),
			statusMarker(float64(th.Results.Score), th.Results.Max),
		},
	})
	if th.Results.Confidence == domain.ConfidenceLow && th.Results.TestsRun > 0 {
		b.WriteString("> ⚠️ Test counts were read from plain console output and may be approximate.\n\n")
	}
	writeCoverageByFile(&b, th.Coverage.ByFile)
	writeUncovered(&b, th.Coverage.UncoveredFunctions)
	writeFailures(&b, th.Results.Failures)
	b.WriteString("---\n\n")

	// Test presence
	fmt.Fprintf(&b, "### ✅ Test Presence (%s/%d)\n\n", points(tp.Total), tp.Max)
	writeTable(&b, []string{"Type", "Status", "Score"}, [][]string{
		{"Unit Tests", presence(tp.UnitTests.Found, tp.UnitTests.Count), fmt.Sprintf("%d/%d", tp.UnitTests.Score, tp.UnitTests.Max)},
		e2eRow(tp.E2E),
	})
	b.WriteString("---\n\n")

	b.WriteString("### 📊 Score Breakdown\n\n")
	writeTable(&b, []string{"Category", "Earned", "Max"}, [][]string{
		{"Code Quality", points(cq.Total), strconv.Itoa(cq.Max)},
		{"Test Health", points(th.Total), strconv.Itoa(th.Max)},
		{"Test Presence", points(tp.Total), strconv.Itoa(tp.Max)},
		{"**Total**", fmt.Sprintf("**%d**", r.FinalScore), "**100**"},
	})
	b.WriteString("---\n\n")

	writeVerdict(&b, r)

	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "<sub>Generated by qualitygate • %s</sub>\n", generatedAt.UTC().Format("2006-01-02 15:04 UTC"))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeComplexity(b *strings.Builder, m domain.IssueMetric) {
	if len(m.Issues) == 0 {
		return
	}
	fmt.Fprintf(b, "#### 🔴 Complexity Issues (%d found, -%d points)\n\n", m.IssuesCount, m.Penalty)
	var rows [][]string
	for _, iss := range head(m.Issues, maxIssueRows) {
		rows = append(rows, []string{formatPath(iss.File), strconv.Itoa(iss.Line), escape(clip(iss.Message, 60))})
	}
	if m.IssuesCount > maxIssueRows {
		rows = append(rows, []string{"...", "...", fmt.Sprintf("*%d more issues*", m.IssuesCount-maxIssueRows)})
	}
	writeTable(b, []string{"File", "Line", "Issue"}, rows)

	b.WriteString("<details>\n<summary>💡 How to fix complexity issues</summary>\n\n")
	b.WriteString("- Break large functions into smaller, focused functions\n")
	b.WriteString("- Extract helper functions for distinct logic blocks\n")
	b.WriteString("- Use early returns to reduce nesting\n")
	b.WriteString("- Aim for functions under 20 lines and complexity under 10\n")
	b.WriteString("\n</details>\n\n")
}

func writeSmells(b *strings.Builder, m domain.IssueMetric) {
	if len(m.Issues) == 0 {
		return
	}
	fmt.Fprintf(b, "#### 🟡 Code Smells (%d found, -%d points)\n\n", m.IssuesCount, m.Penalty)
	var rows [][]string
	for _, iss := range head(m.Issues, maxIssueRows) {
		rows = append(rows, []string{formatPath(iss.File), strconv.Itoa(iss.Line), escape(clip(iss.Message, 40)), code(iss.Code)})
	}
	if m.IssuesCount > maxIssueRows {
		rows = append(rows, []string{"...", "...", fmt.Sprintf("*%d more issues*", m.IssuesCount-maxIssueRows), "..."})
	}
	writeTable(b, []string{"File", "Line", "Issue", "Rule"}, rows)
}

func writeDuplication(b *strings.Builder, m domain.DuplicationMetric) {
	if m.Percentage <= 0 {
		return
	}
	fmt.Fprintf(b, "#### 📋 Duplication (%.1f%%, -%s points)\n\n", m.Percentage, points(m.Penalty))
	if len(m.Duplications) == 0 {
		return
	}
	var rows [][]string
	for _, d := range head(m.Duplications, maxDuplications) {
		rows = append(rows, []string{formatPath(d.FirstFile), formatPath(d.SecondFile), strconv.Itoa(d.Lines)})
	}
	writeTable(b, []string{"First File", "Second File", "Lines"}, rows)
}

func writeCoverageByFile(b *strings.Builder, files []domain.CoverageFileEntry) {
	if len(files) == 0 {
		return
	}
	b.WriteString("<details>\n<summary>📁 Coverage by File</summary>\n\n")
	var rows [][]string
	for _, f := range head(files, maxCoverageRows) {
		rows = append(rows, []string{
			formatPath(f.File),
			strconv.Itoa(f.TotalLines),
			strconv.Itoa(f.CoveredLines),
			fmt.Sprintf("%.1f%%", f.Coverage),
			statusMarker(f.Coverage, 100),
		})
	}
	if len(files) > maxCoverageRows {
		rows = append(rows, []string{"...", "...", "...", fmt.Sprintf("*%d more files*", len(files)-maxCoverageRows), "..."})
	}
	writeTable(b, []string{"File", "Lines", "Covered", "Coverage", "Status"}, rows)
	b.WriteString("</details>\n\n")
}

func writeUncovered(b *strings.Builder, funcs []string) {
	if len(funcs) == 0 {
		return
	}
	b.WriteString("<details>\n<summary>⚠️ Uncovered Functions</summary>\n\n")
	writeList(b, funcs, maxUncovered)
	b.WriteString("\n</details>\n\n")
}

func writeFailures(b *strings.Builder, failures []string) {
	if len(failures) == 0 {
		return
	}
	b.WriteString("#### ❌ Failed Tests\n\n")
	writeList(b, failures, maxFailures)
	b.WriteString("\n")
}

func writeList(b *strings.Builder, items []string, limit int) {
	for _, it := range head(items, limit) {
		fmt.Fprintf(b, "- %s\n", code(it))
	}
	if len(items) > limit {
		fmt.Fprintf(b, "- *...and %d more*\n", len(items)-limit)
	}
}

func writeVerdict(b *strings.Builder, r domain.ScoreReport) {
	if !r.Passed {
		fmt.Fprintf(b, "> ❌ **This PR is below the quality threshold (%d).**\n", r.Threshold)
		b.WriteString("> Please address the issues above before merging.\n")
		return
	}

	b.WriteString("> ✅ **This PR meets quality standards.**\n")
	cq, th := r.Breakdown.CodeQuality, r.Breakdown.TestHealth
	var suggestions []string
	if th.Coverage.Percentage < 80 {
		suggestions = append(suggestions, fmt.Sprintf("Consider improving coverage (currently %.1f%%)", th.Coverage.Percentage))
	}
	if cq.Complexity.IssuesCount > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Consider reducing complexity (%d issues)", cq.Complexity.IssuesCount))
	}
	if cq.Smells.IssuesCount > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Consider fixing code smells (%d issues)", cq.Smells.IssuesCount))
	}
	if len(suggestions) > 0 {
		fmt.Fprintf(b, "> 💡 Suggestions: %s\n", strings.Join(suggestions, "; "))
	}
}

func metricRow(name string, score float64, maxPoints int) []string {
	return []string{name, fmt.Sprintf("%s/%d", points(score), maxPoints), statusMarker(score, maxPoints)}
}

func e2eRow(m domain.E2EMetric) []string {
	if !m.Applicable || m.Score == nil || m.Max == nil {
		return []string{"E2E Tests", "⏭️ Not required", "N/A"}
	}
	return []string{"E2E Tests", presence(m.Found, m.Count), fmt.Sprintf("%d/%d", *m.Score, *m.Max)}
}

func presence(found bool, count int) string {
	if !found {
		return "❌ Not found"
	}
	return fmt.Sprintf("✅ Found (%d tests)", count)
}

// statusMarker grades score against maxPoints: green from 80%, yellow from
// 60%, red below, white when there is nothing to earn.
func statusMarker(score float64, maxPoints int) string {
	if maxPoints <= 0 {
		return "⚪"
	}
	pct := score / float64(maxPoints) * 100
	switch {
	case pct >= 80:
		return "🟢"
	case pct >= 60:
		return "🟡"
	default:
		return "🔴"
	}
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	fmt.Fprintf(b, "| %s |\n", strings.Join(headers, " | "))
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(seps, " | "))
	for _, row := range rows {
		fmt.Fprintf(b, "| %s |\n", strings.Join(row, " | "))
	}
	b.WriteString("\n")
}

// formatPath keeps the tail of long paths so the file name stays visible.
func formatPath(p string) string {
	r := []rune(p)
	if len(r) > maxPathLen {
		p = "..." + string(r[len(r)-(maxPathLen-3):])
	}
	return code(p)
}

func code(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "'") + "`"
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// escape keeps free text from breaking the surrounding table row.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
