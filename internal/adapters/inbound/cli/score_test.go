package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qualitygate/qualitygate/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureProject lays out a small checkout with lint and duplication
// artifacts for one changed Python file.
func fixtureProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"changed.txt":   "src/app.py\n",
		".quality.yaml": "threshold: 60\n",
		"ruff.json":     `[{"code": "C901", "filename": "src/app.py", "location": {"row": 4}, "message": "too complex"}]`,
		"jscpd.json":    `{"statistics": {"total": {"percentage": 1.0}}, "duplicates": []}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func scoreArgs(dir string, extra ...string) []string {
	args := []string{
		"score",
		"--path", dir,
		"--changed-files", filepath.Join(dir, "changed.txt"),
		"--ruff", filepath.Join(dir, "ruff.json"),
		"--jscpd", filepath.Join(dir, "jscpd.json"),
	}
	return append(args, extra...)
}

func TestScoreCommand_JSON(t *testing.T) {
	dir := fixtureProject(t)
	out, err := execute(t, scoreArgs(dir, "--json")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"final_score": 39`)
	assert.Contains(t, out, `"threshold": 60`)
	assert.Contains(t, out, `"files_analyzed": [`)
	assert.Contains(t, out, `"C901"`)
}

func TestScoreCommand_WritesOutput(t *testing.T) {
	dir := fixtureProject(t)
	out := filepath.Join(dir, "results", "score.json")
	_, err := execute(t, scoreArgs(dir, "--output", out)...)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"final_score"`)
}

func TestScoreCommand_CIFails(t *testing.T) {
	dir := fixtureProject(t)
	_, err := execute(t, scoreArgs(dir, "--ci")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below threshold 60")
}

func TestScoreCommand_CIPassesWithLowerThreshold(t *testing.T) {
	dir := fixtureProject(t)
	_, err := execute(t, scoreArgs(dir, "--ci", "--threshold", "30")...)
	assert.NoError(t, err)
}

func TestScoreCommand_Badge(t *testing.T) {
	dir := fixtureProject(t)
	out, err := execute(t, scoreArgs(dir, "--badge")...)
	require.NoError(t, err)
	assert.Contains(t, out, "img.shields.io/badge/quality-39%2F100-red")
}

func TestScoreCommand_DefaultTUI(t *testing.T) {
	dir := fixtureProject(t)
	out, err := execute(t, scoreArgs(dir)...)
	require.NoError(t, err)
	assert.Contains(t, out, "qualitygate")
	assert.Contains(t, out, "39 / 100")
	assert.Contains(t, out, "FAILED")
}

func TestScoreCommand_TestSourcesAreExclusive(t *testing.T) {
	dir := fixtureProject(t)
	_, err := execute(t, scoreArgs(dir, "--run-tests", "--test-results", "x.json")...)
	assert.Error(t, err)
}

func TestScoreCommand_RecordsHistory(t *testing.T) {
	dir := fixtureProject(t)
	_, err := execute(t, scoreArgs(dir, "--record")...)
	require.NoError(t, err)

	out, err := execute(t, "history", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Score History")
	assert.Contains(t, out, "39/100")

	out, err = execute(t, "history", "--path", dir, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"final_score": 39`)
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := execute(t, "history", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No score history")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "qualitygate "))
	assert.Contains(t, out, "commit none")
}

func TestRootCommand_SilencesUsageOnError(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	assert.Equal(t, "qualitygate", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	out, err := execute(t, "score", "--no-such-flag")
	require.Error(t, err)
	assert.NotContains(t, out, "Usage:")
}
