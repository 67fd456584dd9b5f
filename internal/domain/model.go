package domain

import "strconv"

// Category classifies a lint finding for scoring purposes.
type Category string

const (
	CategoryComplexity Category = "complexity"
	CategorySmell      Category = "smell"
)

// Tool identifies the linter family that produced a finding.
type Tool string

const (
	ToolRuff      Tool = "ruff"
	ToolESLint    Tool = "eslint"
	ToolSwiftLint Tool = "swiftlint"
	ToolDetekt    Tool = "detekt"
)

// Tools enumerates the supported linter families in report order.
var Tools = []Tool{ToolRuff, ToolESLint, ToolSwiftLint, ToolDetekt}

// IsValidTool reports whether name is a supported linter family.
func IsValidTool(name string) bool {
	for _, t := range Tools {
		if string(t) == name {
			return true
		}
	}
	return false
}

// Issue is a single normalized static-analysis finding.
type Issue struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Category Category `json:"category"`
	Tool     Tool     `json:"tool"`
}

// LintReport holds every finding one linter reported.
type LintReport struct {
	Tool   Tool    `json:"tool"`
	Issues []Issue `json:"issues"`
}

func (r LintReport) Total() int { return len(r.Issues) }

func (r LintReport) Complexity() []Issue { return r.byCategory(CategoryComplexity) }

func (r LintReport) Smells() []Issue { return r.byCategory(CategorySmell) }

func (r LintReport) byCategory(c Category) []Issue {
	var out []Issue
	for _, iss := range r.Issues {
		if iss.Category == c {
			out = append(out, iss)
		}
	}
	return out
}

// DuplicationEntry is one pair of duplicated blocks.
type DuplicationEntry struct {
	FirstFile  string `json:"first_file"`
	SecondFile string `json:"second_file"`
	Lines      int    `json:"lines"`
	Tokens     int    `json:"tokens"`
}

// DuplicationReport is evaluated repository-wide, never scoped to a change.
type DuplicationReport struct {
	Percentage      float64            `json:"percentage"`
	TotalLines      int                `json:"total_lines"`
	DuplicatedLines int                `json:"duplicated_lines"`
	Entries         []DuplicationEntry `json:"duplications"`
}

// CoverageFileEntry is the coverage of one changed file.
type CoverageFileEntry struct {
	File         string  `json:"file"`
	TotalLines   int     `json:"total_lines"`
	CoveredLines int     `json:"covered_lines"`
	Coverage     float64 `json:"coverage"`
}

// CoverageReport aggregates coverage over the changed-file subset.
// Units are lines or statements depending on the source format.
type CoverageReport struct {
	TotalLines         int                 `json:"total_lines"`
	CoveredLines       int                 `json:"covered_lines"`
	Percentage         float64             `json:"percentage"`
	ByFile             []CoverageFileEntry `json:"by_file"`
	UncoveredFunctions []string            `json:"uncovered_functions"`
}

// AddFile records one file's totals. Files with no measurable units are ignored.
func (r *CoverageReport) AddFile(file string, total, covered int) {
	if total <= 0 {
		return
	}
	r.TotalLines += total
	r.CoveredLines += covered
	r.ByFile = append(r.ByFile, CoverageFileEntry{
		File:         file,
		TotalLines:   total,
		CoveredLines: covered,
		Coverage:     CoveragePercentage(covered, total),
	})
	r.Recompute()
}

// Merge folds other into r and re-establishes the percentage invariant.
func (r *CoverageReport) Merge(other CoverageReport) {
	r.TotalLines += other.TotalLines
	r.CoveredLines += other.CoveredLines
	r.ByFile = append(r.ByFile, other.ByFile...)
	r.UncoveredFunctions = append(r.UncoveredFunctions, other.UncoveredFunctions...)
	r.Recompute()
}

func (r *CoverageReport) Recompute() {
	r.Percentage = CoveragePercentage(r.CoveredLines, r.TotalLines)
}

// CoveragePercentage returns covered/total as a percentage rounded to one
// decimal, or 0 when total is not positive.
func CoveragePercentage(covered, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(float64(covered) / float64(total) * 100)
}

// Round1 rounds to one decimal place using the exact binary value of v, so
// 0.35 (stored just below 0.35) rounds down and exact halves round to even.
func Round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}

// ResultSource names how a TestRunResult was obtained.
type ResultSource string

const (
	SourceGoTestJSON ResultSource = "go-test-json"
	SourceJestJSON   ResultSource = "jest-json"
	SourceJUnitXML   ResultSource = "junit-xml"
	SourceHeuristic  ResultSource = "heuristic"
	SourceMixed      ResultSource = "mixed"
)

// Confidence grades how trustworthy a test count is.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

func (s ResultSource) Confidence() Confidence {
	switch s {
	case SourceGoTestJSON, SourceJestJSON, SourceJUnitXML:
		return ConfidenceHigh
	default:
		return ConfidenceLow
	}
}

// TestRunResult holds pass/fail/skip counts for one or more test runs.
// TestsRun always equals TestsPassed+TestsFailed+TestsSkipped.
type TestRunResult struct {
	TestsRun     int          `json:"tests_run"`
	TestsPassed  int          `json:"tests_passed"`
	TestsFailed  int          `json:"tests_failed"`
	TestsSkipped int          `json:"tests_skipped"`
	Failures     []string     `json:"failures"`
	Source       ResultSource `json:"source,omitempty"`
	Confidence   Confidence   `json:"confidence,omitempty"`
}

func NewTestRunResult(passed, failed, skipped int, failures []string, source ResultSource) TestRunResult {
	return TestRunResult{
		TestsRun:     passed + failed + skipped,
		TestsPassed:  passed,
		TestsFailed:  failed,
		TestsSkipped: skipped,
		Failures:     failures,
		Source:       source,
		Confidence:   source.Confidence(),
	}
}

// Add returns the sum of r and other. The sum keeps the lower confidence.
func (r TestRunResult) Add(other TestRunResult) TestRunResult {
	source := other.Source
	switch {
	case r.Source != "" && other.Source != "" && r.Source != other.Source:
		source = SourceMixed
	case r.Source != "":
		source = r.Source
	}
	sum := NewTestRunResult(
		r.TestsPassed+other.TestsPassed,
		r.TestsFailed+other.TestsFailed,
		r.TestsSkipped+other.TestsSkipped,
		append(append([]string(nil), r.Failures...), other.Failures...),
		source,
	)
	sum.Confidence = lowerConfidence(r.Confidence, other.Confidence)
	return sum
}

func lowerConfidence(a, b Confidence) Confidence {
	if a == ConfidenceLow || b == ConfidenceLow {
		return ConfidenceLow
	}
	if a == "" {
		return b
	}
	return a
}

// TestPresence records whether unit and end-to-end tests exist at all.
type TestPresence struct {
	UnitTestsFound bool     `json:"unit_tests_found"`
	UnitTestsCount int      `json:"unit_tests_count"`
	UnitTestFiles  []string `json:"unit_test_files"`
	E2ETestsFound  bool     `json:"e2e_tests_found"`
	E2ETestsCount  int      `json:"e2e_tests_count"`
	E2ETestFiles   []string `json:"e2e_test_files"`
}

// TestReport is the document produced by the test stage.
type TestReport struct {
	Results  TestRunResult  `json:"results"`
	Coverage CoverageReport `json:"coverage"`
	Presence TestPresence   `json:"presence"`
}
