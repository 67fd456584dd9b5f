package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// renderIssues prints the previewed complexity and smell issues as a table.
func renderIssues(b *strings.Builder, cq domain.CodeQuality) {
	total := cq.Complexity.IssuesCount + cq.Smells.IssuesCount
	if total == 0 {
		b.WriteString("  " + passStyle.Render("No lint issues in the change.") + "\n")
		return
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Issues"))
	b.WriteString("  ")
	if n := cq.Complexity.IssuesCount; n > 0 {
		b.WriteString(failStyle.Bold(true).Render(fmt.Sprintf("%d complexity", n)))
		b.WriteString("  ")
	}
	if n := cq.Smells.IssuesCount; n > 0 {
		b.WriteString(warnStyle.Bold(true).Render(fmt.Sprintf("%d smells", n)))
	}
	b.WriteString("\n\n")

	table := tablewriter.NewTable(b,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)
	table.Header([]string{"Category", "Tool", "Rule", "Location", "Message"})
	for _, iss := range append(append([]domain.Issue(nil), cq.Complexity.Issues...), cq.Smells.Issues...) {
		table.Append([]string{
			string(iss.Category),
			string(iss.Tool),
			HumanizeRule(iss.Tool, iss.Code),
			location(iss),
			truncate(iss.Message, 60),
		})
	}
	table.Render()

	if shown := len(cq.Complexity.Issues) + len(cq.Smells.Issues); shown < total {
		b.WriteString("  " + hintStyle.Render(fmt.Sprintf("… and %d more", total-shown)) + "\n")
	}
	b.WriteString("\n")
}

// renderListSection prints a titled list of evidence strings. Empty lists
// print nothing.
func renderListSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("  " + sectionHeaderStyle.Render(title) + "\n")
	for _, item := range items {
		b.WriteString("    " + listItemStyle.Render("• ") + item + "\n")
	}
	b.WriteString("\n")
}

// HumanizeRule turns detekt's PascalCase and SwiftLint's snake_case rule
// ids into words. Other tools' codes are already what users search for.
func HumanizeRule(tool domain.Tool, code string) string {
	switch tool {
	case domain.ToolDetekt:
		return strings.Join(camelcase.Split(code), " ")
	case domain.ToolSwiftLint:
		return strings.ReplaceAll(code, "_", " ")
	default:
		return code
	}
}

func location(iss domain.Issue) string {
	file := shortenPath(iss.File)
	if iss.Line > 0 {
		return file + ":" + strconv.Itoa(iss.Line)
	}
	return file
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// shortenPath keeps the last three path segments.
func shortenPath(p string) string {
	p = filepath.ToSlash(p)
	seen := 0
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != '/' {
			continue
		}
		if seen++; seen == 3 {
			return p[i+1:]
		}
	}
	return p
}
