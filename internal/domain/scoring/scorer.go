package scoring

import (
	"math"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// Input is everything the scorer consumes, already parsed, classified and
// scoped to the change set.
type Input struct {
	E2ERequired  bool
	Threshold    int
	ChangedFiles []string
	Lint         []domain.LintReport
	Duplication  domain.DuplicationReport
	Tests        domain.TestReport
}

// Score computes the breakdown and verdict. It is pure: the same policy and
// input always produce an identical report, and input slices are copied,
// never aliased.
func Score(p Policy, in Input) domain.ScoreReport {
	var complexity, smells []domain.Issue
	totalIssues := 0
	for _, r := range in.Lint {
		complexity = append(complexity, r.Complexity()...)
		smells = append(smells, r.Smells()...)
		totalIssues += r.Total()
	}

	cq := scoreCodeQuality(p, complexity, smells, in.Duplication)
	th := scoreTestHealth(p, in.Tests)
	tp := scoreTestPresence(p, in.Tests, in.E2ERequired)

	report := domain.ScoreReport{
		Threshold: in.Threshold,
		Breakdown: domain.Breakdown{
			CodeQuality:  cq,
			TestHealth:   th,
			TestPresence: tp,
		},
		RawData: domain.RawData{
			TotalLinterIssues:     totalIssues,
			ComplexityIssuesCount: len(complexity),
			SmellIssuesCount:      len(smells),
			DuplicationPercentage: in.Duplication.Percentage,
			DuplicationLines:      in.Duplication.DuplicatedLines,
			CoveragePercentage:    in.Tests.Coverage.Percentage,
			TestsTotal:            in.Tests.Results.TestsRun,
			TestsPassed:           in.Tests.Results.TestsPassed,
			TestsFailed:           in.Tests.Results.TestsFailed,
		},
		FilesAnalyzed: preview(in.ChangedFiles, len(in.ChangedFiles)),
		FilesCount:    len(in.ChangedFiles),
	}

	report.FinalScore = FinalScore(report.Earned(), report.Max())
	report.Passed = report.FinalScore >= in.Threshold
	return report
}

// FinalScore normalizes earned points to 0-100, rounding half away from zero.
func FinalScore(earned float64, maxPoints int) int {
	if maxPoints <= 0 {
		return 0
	}
	return int(math.Round(earned / float64(maxPoints) * 100))
}

func scoreCodeQuality(p Policy, complexity, smells []domain.Issue, dup domain.DuplicationReport) domain.CodeQuality {
	cScore, cPenalty := p.Complexity(len(complexity))
	sScore, sPenalty := p.Smells(len(smells))
	dScore, dPenalty := p.Duplication(dup.Percentage)

	return domain.CodeQuality{
		Total: domain.Round1(float64(cScore+sScore) + dScore),
		Max:   p.codeQualityMax(),
		Complexity: domain.IssueMetric{
			Score:       cScore,
			Max:         p.ComplexityMax,
			Penalty:     cPenalty,
			IssuesCount: len(complexity),
			Issues:      preview(complexity, p.Preview.Issues),
		},
		Smells: domain.IssueMetric{
			Score:       sScore,
			Max:         p.SmellsMax,
			Penalty:     sPenalty,
			IssuesCount: len(smells),
			Issues:      preview(smells, p.Preview.Issues),
		},
		Duplication: domain.DuplicationMetric{
			Score:        dScore,
			Max:          p.DuplicationMax,
			Penalty:      dPenalty,
			Percentage:   dup.Percentage,
			Duplications: preview(dup.Entries, p.Preview.Duplications),
		},
	}
}

func scoreTestHealth(p Policy, tests domain.TestReport) domain.TestHealth {
	cov := tests.Coverage
	res := tests.Results
	covScore := p.Coverage(cov.Percentage)
	resScore := p.TestResults(res.TestsPassed, res.TestsFailed)

	return domain.TestHealth{
		Total: float64(covScore + resScore),
		Max:   p.testHealthMax(),
		Coverage: domain.CoverageMetric{
			Score:              covScore,
			Max:                p.CoverageMax,
			Percentage:         cov.Percentage,
			TotalLines:         cov.TotalLines,
			CoveredLines:       cov.CoveredLines,
			ByFile:             preview(cov.ByFile, len(cov.ByFile)),
			UncoveredFunctions: preview(cov.UncoveredFunctions, p.Preview.UncoveredFunctions),
		},
		Results: domain.ResultsMetric{
			Score:        resScore,
			Max:          p.ResultsMax,
			TestsRun:     res.TestsRun,
			TestsPassed:  res.TestsPassed,
			TestsFailed:  res.TestsFailed,
			TestsSkipped: res.TestsSkipped,
			Failures:     preview(res.Failures, p.Preview.Failures),
			Source:       res.Source,
			Confidence:   res.Confidence,
		},
	}
}

func scoreTestPresence(p Policy, tests domain.TestReport, e2eRequired bool) domain.TestPresenceScore {
	pr := tests.Presence
	unit := p.UnitTests(pr.UnitTestsFound, tests.Results.TestsFailed)
	e2eScore, e2eMax := p.E2E(e2eRequired, pr.E2ETestsFound)

	total, maxPoints := unit, p.UnitTestsMax
	if e2eScore != nil {
		total += *e2eScore
		maxPoints += *e2eMax
	}

	return domain.TestPresenceScore{
		Total: float64(total),
		Max:   maxPoints,
		UnitTests: domain.UnitMetric{
			Score: unit,
			Max:   p.UnitTestsMax,
			Found: pr.UnitTestsFound,
			Count: pr.UnitTestsCount,
			Files: preview(pr.UnitTestFiles, p.Preview.UnitTestFiles),
		},
		E2E: domain.E2EMetric{
			Score:      e2eScore,
			Max:        e2eMax,
			Applicable: e2eRequired,
			Required:   e2eRequired,
			Found:      pr.E2ETestsFound,
			Count:      pr.E2ETestsCount,
		},
	}
}

// preview copies at most n leading elements. The result is never nil so
// empty evidence serializes as [] rather than null.
func preview[T any](s []T, n int) []T {
	n = max(0, min(n, len(s)))
	out := make([]T, n)
	copy(out, s[:n])
	return out
}
