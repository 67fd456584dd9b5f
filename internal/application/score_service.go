package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/classify"
	"github.com/qualitygate/qualitygate/internal/domain/scoring"
)

// LintParserFactory builds the per-tool lint parsers for a classification
// policy.
type LintParserFactory func(policy classify.Policy) map[domain.Tool]domain.LintParser

// ScoreRequest names the artifacts of one gate run. Empty paths mean the
// tool did not run.
type ScoreRequest struct {
	ProjectPath string
	ConfigPath  string
	Changes     domain.ChangedFilesSource
	LintReports map[domain.Tool]string
	JSCPDReport string
	TestResults string
	RunTests    bool
	Threshold   *int
	OutputPath  string
	Record      bool
}

// ScoreService orchestrates the scoring pipeline:
// load config → changed files → parse lint, duplication and tests → score → write → record.
type ScoreService struct {
	configLoader domain.ConfigLoader
	lintParsers  LintParserFactory
	duplication  domain.DuplicationParser
	reader       domain.ReportReader
	writer       domain.ReportWriter
	git          domain.GitInfo
	history      domain.ScoreHistory
	tests        *TestService
	now          func() time.Time
}

func NewScoreService(
	configLoader domain.ConfigLoader,
	lintParsers LintParserFactory,
	duplication domain.DuplicationParser,
	reader domain.ReportReader,
	writer domain.ReportWriter,
	git domain.GitInfo,
	history domain.ScoreHistory,
	tests *TestService,
) *ScoreService {
	return &ScoreService{
		configLoader: configLoader,
		lintParsers:  lintParsers,
		duplication:  duplication,
		reader:       reader,
		writer:       writer,
		git:          git,
		history:      history,
		tests:        tests,
		now:          time.Now,
	}
}

// ScoreChange computes the gate result for one change. Only writing the
// output report can fail; every input problem degrades to default values.
func (s *ScoreService) ScoreChange(ctx context.Context, req ScoreRequest) (domain.ScoreReport, error) {
	// 1. Config
	cfg := s.configLoader.Load(req.ConfigPath)

	// 2. Changed files
	changed := s.changedFiles(req.Changes)

	// 3. Lint, classified with the configured rule sets
	parsers := s.lintParsers(classify.DefaultPolicy().WithOverrides(cfg.Lint.ComplexityRules))
	var lint []domain.LintReport
	for _, tool := range domain.Tools {
		path := req.LintReports[tool]
		p, ok := parsers[tool]
		if path == "" || !ok {
			continue
		}
		lint = append(lint, p.Parse(path))
	}

	// 4. Duplication (repository-wide)
	dup := s.duplication.Parse(req.JSCPDReport)

	// 5. Tests
	tests := s.testReport(ctx, req, cfg, changed)

	// 6. Score
	report := scoring.Score(scoring.DefaultPolicy().WithOverrides(cfg.Scoring), scoring.Input{
		E2ERequired:  cfg.E2E.Required,
		Threshold:    cfg.EffectiveThreshold(req.Threshold),
		ChangedFiles: changed,
		Lint:         lint,
		Duplication:  dup,
		Tests:        tests,
	})

	// 7. Persist
	if req.OutputPath != "" {
		if err := s.writer.Write(req.OutputPath, report); err != nil {
			return report, fmt.Errorf("writing score report: %w", err)
		}
	}
	if req.Record {
		s.record(req.ProjectPath, report)
	}

	return report, nil
}

// RunTests executes the test stage on its own, as the test command does.
func (s *ScoreService) RunTests(ctx context.Context, configPath string, changes domain.ChangedFilesSource) (domain.TestReport, error) {
	if s.tests == nil {
		return domain.TestReport{}, fmt.Errorf("test stage not configured")
	}
	cfg := s.configLoader.Load(configPath)
	return s.tests.Run(ctx, cfg.Tests, s.changedFiles(changes)), nil
}

func (s *ScoreService) changedFiles(src domain.ChangedFilesSource) []string {
	if src == nil {
		return []string{}
	}
	files, err := src.ChangedFiles()
	if err != nil {
		slog.Warn("reading changed files, scoring with an empty change set", "error", err)
		return []string{}
	}
	if files == nil {
		return []string{}
	}
	return files
}

func (s *ScoreService) testReport(ctx context.Context, req ScoreRequest, cfg domain.QualityConfig, changed []string) domain.TestReport {
	if req.RunTests && s.tests != nil {
		return s.tests.Run(ctx, cfg.Tests, changed)
	}

	var report domain.TestReport
	if req.TestResults == "" {
		return report
	}
	if err := s.reader.Read(req.TestResults, &report); err != nil {
		slog.Warn("test results unavailable, scoring without them", "file", req.TestResults, "error", err)
		return domain.TestReport{}
	}
	report.Results = normalizeResults(report.Results)
	return report
}

// normalizeResults re-derives TestsRun and confidence from the counts of a
// stored document. A stored confidence without a source is kept.
func normalizeResults(r domain.TestRunResult) domain.TestRunResult {
	failures := r.Failures
	if failures == nil {
		failures = []string{}
	}
	out := domain.NewTestRunResult(max(0, r.TestsPassed), max(0, r.TestsFailed), max(0, r.TestsSkipped), failures, r.Source)
	if r.Source == "" && r.Confidence != "" {
		out.Confidence = r.Confidence
	}
	return out
}

func (s *ScoreService) record(projectPath string, report domain.ScoreReport) {
	entry := domain.ScoreEntry{
		Timestamp:  s.now().UTC().Format(time.RFC3339),
		FinalScore: report.FinalScore,
		Threshold:  report.Threshold,
		Passed:     report.Passed,
		FilesCount: report.FilesCount,
	}
	if s.git.IsGitRepo(projectPath) {
		if hash, err := s.git.CommitHash(projectPath); err == nil {
			entry.CommitHash = hash
		}
	}
	if err := s.history.Save(projectPath, entry); err != nil {
		slog.Warn("recording score history", "path", projectPath, "error", err)
	}
}
