package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/report"
	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONWriter_WritesIndentedJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out", "nested", "score.json")

	require.NoError(t, report.NewJSONWriter().Write(p, domain.ScoreEntry{FinalScore: 44, Threshold: 70}))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"final_score\": 44,")

	var got domain.ScoreEntry
	require.NoError(t, report.ReadJSON(p, &got))
	assert.Equal(t, 44, got.FinalScore)
}

func TestJSONWriter_UnwritablePathFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := report.NewJSONWriter().Write(filepath.Join(blocker, "score.json"), map[string]int{"a": 1})
	assert.Error(t, err)

	assert.Error(t, report.NewJSONWriter().Write("", nil))
}

func TestReadJSON_Errors(t *testing.T) {
	dir := t.TempDir()
	var v map[string]any
	assert.Error(t, report.ReadJSON(filepath.Join(dir, "missing.json"), &v))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	assert.Error(t, report.ReadJSON(bad, &v))
}
