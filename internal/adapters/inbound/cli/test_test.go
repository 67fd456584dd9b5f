package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/report"
	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommand_RunsConfiguredCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tests"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tests", "test_app.py"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".quality.yaml"), []byte(`tests:
  enabled: true
  command: "echo '===== 3 passed, 1 skipped in 0.2s ====='"
`), 0644))
	out := filepath.Join(dir, "test-results.json")

	stdout, err := execute(t, "test", "--path", dir, "--output", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tests: 3/4 passed")

	var tr domain.TestReport
	require.NoError(t, report.ReadJSON(out, &tr))
	assert.Equal(t, 3, tr.Results.TestsPassed)
	assert.Equal(t, 1, tr.Results.TestsSkipped)
	assert.True(t, tr.Presence.UnitTestsFound)
	assert.Equal(t, []string{"tests/test_app.py"}, tr.Presence.UnitTestFiles)
}

func TestTestCommand_RequiresOutput(t *testing.T) {
	_, err := execute(t, "test", "--path", t.TempDir())
	assert.Error(t, err)
}

func TestScoreCommand_ConsumesTestReport(t *testing.T) {
	dir := fixtureProject(t)
	results := filepath.Join(dir, "test-results.json")
	require.NoError(t, report.NewJSONWriter().Write(results, domain.TestReport{
		Results:  domain.NewTestRunResult(10, 0, 0, nil, domain.SourceJUnitXML),
		Coverage: domain.CoverageReport{TotalLines: 10, CoveredLines: 10, Percentage: 100},
		Presence: domain.TestPresence{UnitTestsFound: true, UnitTestsCount: 1},
	}))

	out, err := execute(t, scoreArgs(dir, "--test-results", results, "--json", "--ci")...)
	require.NoError(t, err)
	// 35 code quality + 30 test health + 20 presence = 85 of 90
	assert.Contains(t, out, `"final_score": 94`)
}
