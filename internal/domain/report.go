package domain

// ScoreReport is the sole contract with downstream reporting. It is built
// once by the scorer and never mutated afterwards.
type ScoreReport struct {
	FinalScore    int       `json:"final_score"`
	Threshold     int       `json:"threshold"`
	Passed        bool      `json:"passed"`
	Breakdown     Breakdown `json:"breakdown"`
	RawData       RawData   `json:"raw_data"`
	FilesAnalyzed []string  `json:"files_analyzed"`
	FilesCount    int       `json:"files_count"`
}

// Earned and Max are the sums the final score is derived from.
func (r ScoreReport) Earned() float64 {
	b := r.Breakdown
	return b.CodeQuality.Total + b.TestHealth.Total + b.TestPresence.Total
}

func (r ScoreReport) Max() int {
	b := r.Breakdown
	return b.CodeQuality.Max + b.TestHealth.Max + b.TestPresence.Max
}

type Breakdown struct {
	CodeQuality  CodeQuality       `json:"code_quality"`
	TestHealth   TestHealth        `json:"test_health"`
	TestPresence TestPresenceScore `json:"test_presence"`
}

type CodeQuality struct {
	Total       float64           `json:"total"`
	Max         int               `json:"max"`
	Complexity  IssueMetric       `json:"complexity"`
	Smells      IssueMetric       `json:"smells"`
	Duplication DuplicationMetric `json:"duplication"`
}

// IssueMetric scores a count of lint findings. Issues is a bounded preview.
type IssueMetric struct {
	Score       int     `json:"score"`
	Max         int     `json:"max"`
	Penalty     int     `json:"penalty"`
	IssuesCount int     `json:"issues_count"`
	Issues      []Issue `json:"issues"`
}

type DuplicationMetric struct {
	Score        float64            `json:"score"`
	Max          int                `json:"max"`
	Penalty      float64            `json:"penalty"`
	Percentage   float64            `json:"percentage"`
	Duplications []DuplicationEntry `json:"duplications"`
}

type TestHealth struct {
	Total    float64        `json:"total"`
	Max      int            `json:"max"`
	Coverage CoverageMetric `json:"coverage"`
	Results  ResultsMetric  `json:"results"`
}

type CoverageMetric struct {
	Score              int                 `json:"score"`
	Max                int                 `json:"max"`
	Percentage         float64             `json:"percentage"`
	TotalLines         int                 `json:"total_lines"`
	CoveredLines       int                 `json:"covered_lines"`
	ByFile             []CoverageFileEntry `json:"by_file"`
	UncoveredFunctions []string            `json:"uncovered_functions"`
}

type ResultsMetric struct {
	Score        int          `json:"score"`
	Max          int          `json:"max"`
	TestsRun     int          `json:"tests_run"`
	TestsPassed  int          `json:"tests_passed"`
	TestsFailed  int          `json:"tests_failed"`
	TestsSkipped int          `json:"tests_skipped"`
	Failures     []string     `json:"failures"`
	Source       ResultSource `json:"source,omitempty"`
	Confidence   Confidence   `json:"confidence,omitempty"`
}

type TestPresenceScore struct {
	Total     float64    `json:"total"`
	Max       int        `json:"max"`
	UnitTests UnitMetric `json:"unit_tests"`
	E2E       E2EMetric  `json:"e2e"`
}

type UnitMetric struct {
	Score int      `json:"score"`
	Max   int      `json:"max"`
	Found bool     `json:"found"`
	Count int      `json:"count"`
	Files []string `json:"files"`
}

// E2EMetric is only scored when end-to-end tests are required. Otherwise
// Applicable is false and Score and Max are null.
type E2EMetric struct {
	Score      *int `json:"score"`
	Max        *int `json:"max"`
	Applicable bool `json:"applicable"`
	Required   bool `json:"required"`
	Found      bool `json:"found"`
	Count      int  `json:"count"`
}

type RawData struct {
	TotalLinterIssues     int     `json:"total_linter_issues"`
	ComplexityIssuesCount int     `json:"complexity_issues_count"`
	SmellIssuesCount      int     `json:"smell_issues_count"`
	DuplicationPercentage float64 `json:"duplication_percentage"`
	DuplicationLines      int     `json:"duplication_lines"`
	CoveragePercentage    float64 `json:"coverage_percentage"`
	TestsTotal            int     `json:"tests_total"`
	TestsPassed           int     `json:"tests_passed"`
	TestsFailed           int     `json:"tests_failed"`
}

// ScoreEntry is one line of local score history.
type ScoreEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	FinalScore int    `json:"final_score"`
	Threshold  int    `json:"threshold"`
	Passed     bool   `json:"passed"`
	FilesCount int    `json:"files_count"`
}
