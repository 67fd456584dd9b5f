package history_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/history"
	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHistory_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	entry := domain.ScoreEntry{
		Timestamp:  "2026-03-02T09:15:00Z",
		CommitHash: "9f2c1e7",
		FinalScore: 74,
		Threshold:  70,
		Passed:     true,
		FilesCount: 5,
	}

	require.NoError(t, history.New().Save(dir, entry))

	entries, err := history.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.ScoreEntry{entry}, entries)
	assert.FileExists(t, filepath.Join(dir, history.Path))
}

func TestFileHistory_OldestFirst(t *testing.T) {
	dir := t.TempDir()
	h := history.New()
	for _, score := range []int{51, 63, 88} {
		require.NoError(t, h.Save(dir, domain.ScoreEntry{FinalScore: score, Threshold: 70, Passed: score >= 70}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 51, entries[0].FinalScore)
	assert.True(t, entries[2].Passed)
}

func TestFileHistory_DropsOldestBeyondLimit(t *testing.T) {
	dir := t.TempDir()
	h := history.New().WithLimit(3)
	for i := 1; i <= 5; i++ {
		require.NoError(t, h.Save(dir, domain.ScoreEntry{Timestamp: fmt.Sprintf("t%d", i)}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "t3", entries[0].Timestamp)
	assert.Equal(t, "t5", entries[2].Timestamp)
}

func TestFileHistory_NoHistoryYet(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestFileHistory_CorruptFileIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, history.Path)
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("{nope"), 0644))

	_, err := history.New().Load(dir)
	assert.ErrorContains(t, err, "loading score history")
	assert.Error(t, history.New().Save(dir, domain.ScoreEntry{}))

	data, err := os.ReadFile(fp)
	require.NoError(t, err)
	assert.Equal(t, "{nope", string(data))
}
