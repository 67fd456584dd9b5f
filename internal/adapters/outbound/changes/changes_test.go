package changes_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/changes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileList_ReadsNonBlankLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "changed.txt")
	require.NoError(t, os.WriteFile(p, []byte("src/app.py\n\n  web/app.js  \r\n\n"), 0644))

	files, err := changes.NewFileList(p).ChangedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app.py", "web/app.js"}, files)
}

func TestFileList_MissingIsEmpty(t *testing.T) {
	files, err := changes.NewFileList(filepath.Join(t.TempDir(), "none.txt")).ChangedFiles()
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = changes.NewFileList("").ChangedFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileList_DirectoryIsAnError(t *testing.T) {
	_, err := changes.NewFileList(t.TempDir()).ChangedFiles()
	assert.Error(t, err)
}

type stubGit struct {
	files []string
	err   error
	base  string
}

func (s *stubGit) IsGitRepo(string) bool             { return true }
func (s *stubGit) CommitHash(string) (string, error) { return "abc", nil }
func (s *stubGit) ChangedFiles(_, base string) ([]string, error) {
	s.base = base
	return s.files, s.err
}

func TestGitDiff_DelegatesToGit(t *testing.T) {
	g := &stubGit{files: []string{"a.go"}}
	files, err := changes.NewGitDiff(g, ".", "origin/main").ChangedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, files)
	assert.Equal(t, "origin/main", g.base)

	g.err = errors.New("boom")
	_, err = changes.NewGitDiff(g, ".", "main").ChangedFiles()
	assert.Error(t, err)
}

func TestParseList(t *testing.T) {
	files, err := changes.ParseList(" src/a.py, ,src/b.py,").ChangedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.py", "src/b.py"}, files)

	assert.Empty(t, changes.ParseList(""))
}
