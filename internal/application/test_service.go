package application

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/changeset"
)

// SingleCommandToolchain is the tests.junit_files key consulted for the
// single tests.command form.
const SingleCommandToolchain = "default"

// TestService orchestrates the test stage:
// discover test files → setup → run test commands → parse output → collect coverage.
type TestService struct {
	root       string
	discoverer domain.TestDiscoverer
	runner     domain.CommandRunner
	parser     domain.TestOutputParser
	coverage   domain.CoverageCollector
}

func NewTestService(
	root string,
	discoverer domain.TestDiscoverer,
	runner domain.CommandRunner,
	parser domain.TestOutputParser,
	coverage domain.CoverageCollector,
) *TestService {
	return &TestService{
		root:       root,
		discoverer: discoverer,
		runner:     runner,
		parser:     parser,
		coverage:   coverage,
	}
}

// Run produces the test report for the change. Nothing here is fatal: a
// failing setup step, a timed-out command or a missing coverage file only
// lowers what the report can claim.
func (s *TestService) Run(ctx context.Context, cfg domain.TestsConfig, changed []string) domain.TestReport {
	report := domain.TestReport{
		Results: domain.TestRunResult{Failures: []string{}},
		Coverage: domain.CoverageReport{
			ByFile:             []domain.CoverageFileEntry{},
			UncoveredFunctions: []string{},
		},
		Presence: s.discoverer.Discover(s.root),
	}

	if !cfg.Enabled {
		slog.Info("tests not enabled in config")
		return report
	}

	// 1. Setup
	for _, cmd := range cfg.Setup {
		res, err := s.runner.Run(ctx, cmd)
		switch {
		case err != nil:
			slog.Warn("setup command did not complete", "command", cmd, "error", err)
		case res.ExitCode != 0:
			slog.Warn("setup command failed", "command", cmd, "exit_code", res.ExitCode, "stderr", lastLines(res.Stderr, 5))
		}
	}

	// 2. Test commands
	var results domain.TestRunResult
	for _, tc := range testCommands(cfg) {
		r, ok := s.runTests(ctx, tc, cfg)
		if !ok {
			continue
		}
		results = results.Add(r)
	}
	if results.Failures == nil {
		results.Failures = []string{}
	}
	report.Results = results

	// 3. Coverage
	report.Coverage = s.coverage.Collect(s.resolve(cfg.CoverageFile), s.resolveAll(cfg.CoverageFiles), changeset.New(changed))
	return report
}

func (s *TestService) runTests(ctx context.Context, tc domain.NamedValue, cfg domain.TestsConfig) (domain.TestRunResult, bool) {
	slog.Info("running tests", "toolchain", tc.Name, "command", tc.Value)
	res, err := s.runner.Run(ctx, tc.Value)
	if err != nil {
		slog.Warn("test command did not complete", "toolchain", tc.Name, "command", tc.Value, "error", err)
		return domain.TestRunResult{}, false
	}

	if junit := cfg.JUnitFile(tc.Name); junit != "" {
		if r, ok := s.parser.ParseJUnitFile(s.resolve(junit)); ok {
			return r, true
		}
		slog.Debug("junit report unavailable, parsing output", "toolchain", tc.Name, "file", junit)
	}
	return s.parser.ParseOutput(res.Stdout, res.Stderr), true
}

// testCommands returns tests.command alone when set, otherwise every
// tests.commands entry in document order.
func testCommands(cfg domain.TestsConfig) []domain.NamedValue {
	if cfg.Command != "" {
		return []domain.NamedValue{{Name: SingleCommandToolchain, Value: cfg.Command}}
	}
	return cfg.Commands
}

func (s *TestService) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || s.root == "" {
		return path
	}
	return filepath.Join(s.root, path)
}

func (s *TestService) resolveAll(files []domain.NamedValue) []domain.NamedValue {
	out := make([]domain.NamedValue, len(files))
	for i, nv := range files {
		out[i] = domain.NamedValue{Name: nv.Name, Value: s.resolve(nv.Value)}
	}
	return out
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
