package domain

import (
	"context"
	"time"

	"github.com/qualitygate/qualitygate/internal/domain/changeset"
)

// LintParser turns one linter's JSON output into normalized issues.
// Missing or malformed input yields an empty report, never an error.
type LintParser interface {
	Tool() Tool
	Parse(path string) LintReport
}

// CoverageParser turns one coverage format into a report scoped to the
// change set. Missing or malformed input yields an empty report.
type CoverageParser interface {
	Format() CoverageFormat
	Parse(path string, changes changeset.Set) CoverageReport
}

// DuplicationParser reads a repository-wide duplication report.
type DuplicationParser interface {
	Parse(path string) DuplicationReport
}

// ConfigLoader loads the quality config. Malformed documents degrade to
// DefaultConfig.
type ConfigLoader interface {
	Load(path string) QualityConfig
}

// ChangedFilesSource lists the files touched by the change under review.
type ChangedFilesSource interface {
	ChangedFiles() ([]string, error)
}

// CommandResult is the captured outcome of one shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Duration time.Duration
}

// CommandRunner runs shell commands with a bounded wall-clock time.
type CommandRunner interface {
	Run(ctx context.Context, command string) (CommandResult, error)
}

// TestDiscoverer finds unit and end-to-end test files under a root.
type TestDiscoverer interface {
	Discover(root string) TestPresence
}

// ReportWriter persists the final report. Its errors are fatal.
type ReportWriter interface {
	Write(path string, v any) error
}

// ScoreHistory stores past gate results for a repository.
type ScoreHistory interface {
	Save(projectPath string, entry ScoreEntry) error
	Load(projectPath string) ([]ScoreEntry, error)
}

// GitInfo exposes the repository facts the gate records.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	ChangedFiles(projectPath, baseRef string) ([]string, error)
}

// CoverageCollector parses the configured coverage artifacts and merges
// them into one report scoped to the change set.
type CoverageCollector interface {
	Collect(coverageFile string, coverageFiles []NamedValue, changes changeset.Set) CoverageReport
}

// TestOutputParser extracts test counts from a test command's output or
// from a JUnit report written next to it.
type TestOutputParser interface {
	ParseOutput(stdout, stderr string) TestRunResult
	ParseJUnitFile(path string) (TestRunResult, bool)
}

// ReportReader loads a JSON document written by an earlier stage.
type ReportReader interface {
	Read(path string, v any) error
}
