package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/gitinfo"
)

// fixtureRepo is a throwaway repository driven through go-git.
type fixtureRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &fixtureRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (f *fixtureRepo) write(name, content string) {
	f.t.Helper()
	p := filepath.Join(f.dir, name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(f.t, os.WriteFile(p, []byte(content), 0644))
	_, err := f.wt.Add(name)
	require.NoError(f.t, err)
}

func (f *fixtureRepo) remove(name string) {
	f.t.Helper()
	_, err := f.wt.Remove(name)
	require.NoError(f.t, err)
}

func (f *fixtureRepo) commit(msg string) plumbing.Hash {
	f.t.Helper()
	h, err := f.wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "Gate", Email: "gate@example.com", When: time.Now()},
	})
	require.NoError(f.t, err)
	return h
}

func (f *fixtureRepo) branch(name string, create bool) {
	f.t.Helper()
	require.NoError(f.t, f.wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: create,
	}))
}

func TestIsGitRepo(t *testing.T) {
	f := newFixtureRepo(t)
	assert.True(t, gitinfo.New().IsGitRepo(f.dir))
	sub := filepath.Join(f.dir, "pkg", "inner")
	require.NoError(t, os.MkdirAll(sub, 0755))
	assert.True(t, gitinfo.New().IsGitRepo(sub), "finds .git in a parent directory")
	assert.False(t, gitinfo.New().IsGitRepo(t.TempDir()))
}

func TestCommitHash(t *testing.T) {
	f := newFixtureRepo(t)
	f.write("app.py", "print(1)")
	want := f.commit("init")

	got, err := gitinfo.New().CommitHash(f.dir)
	require.NoError(t, err)
	assert.Equal(t, want.String(), got)
}

func TestCommitHash_Errors(t *testing.T) {
	_, err := gitinfo.New().CommitHash(t.TempDir())
	assert.ErrorContains(t, err, "opening git repo")

	_, err = gitinfo.New().CommitHash(newFixtureRepo(t).dir)
	assert.ErrorContains(t, err, "getting HEAD", "no commits yet")
}

func TestChangedFiles_SinceMergeBase(t *testing.T) {
	f := newFixtureRepo(t)
	f.write("README.md", "hi")
	f.write("src/old.py", "x = 1")
	f.commit("init")
	f.branch("base", true)

	f.branch("feature", true)
	f.write("src/app.py", "print(1)")
	f.write("src/old.py", "x = 2")
	f.remove("README.md")
	f.commit("feature work")

	f.branch("base", false)
	f.write("other.py", "y = 1")
	f.commit("unrelated base work")
	f.branch("feature", false)

	files, err := gitinfo.New().ChangedFiles(f.dir, "base")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app.py", "src/old.py"}, files, "deleted and base-only files are left out")
}

func TestChangedFiles_UnknownRef(t *testing.T) {
	f := newFixtureRepo(t)
	f.write("a.txt", "a")
	f.commit("init")

	_, err := gitinfo.New().ChangedFiles(f.dir, "does-not-exist")
	assert.ErrorContains(t, err, "resolving does-not-exist")
}
