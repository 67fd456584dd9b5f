package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCommand_WritesMarkdown(t *testing.T) {
	dir := fixtureProject(t)
	scoreFile := filepath.Join(dir, "score.json")
	_, err := execute(t, scoreArgs(dir, "--output", scoreFile)...)
	require.NoError(t, err)

	commentFile := filepath.Join(dir, "out", "comment.md")
	out, err := execute(t, "comment", "--score-file", scoreFile, "--output", commentFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Comment generated")

	data, err := os.ReadFile(commentFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## 🔍 Code Quality Report")
	assert.Contains(t, string(data), "**39/100**")
	assert.Contains(t, string(data), "Complexity Issues (1 found, -4 points)")
}

func TestCommentCommand_Stdout(t *testing.T) {
	dir := fixtureProject(t)
	scoreFile := filepath.Join(dir, "score.json")
	_, err := execute(t, scoreArgs(dir, "--output", scoreFile)...)
	require.NoError(t, err)

	out, err := execute(t, "comment", "--score-file", scoreFile, "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "### 📊 Score Breakdown")
}

func TestCommentCommand_MissingScoreFile(t *testing.T) {
	_, err := execute(t, "comment", "--score-file", filepath.Join(t.TempDir(), "nope.json"), "--output", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading score report")
}
