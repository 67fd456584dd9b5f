package gitinfo

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitInfoAdapter implements domain.GitInfo using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// ChangedFiles lists files added or modified on HEAD since it diverged from
// baseRef, like `git diff --name-only base...HEAD`. Deleted files are
// omitted since nothing can be measured for them.
func (g *GitInfoAdapter) ChangedFiles(projectPath, baseRef string) ([]string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("loading HEAD commit: %w", err)
	}

	baseHash, err := repo.ResolveRevision(plumbing.Revision(baseRef))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", baseRef, err)
	}
	baseCommit, err := repo.CommitObject(*baseHash)
	if err != nil {
		return nil, fmt.Errorf("loading %s commit: %w", baseRef, err)
	}
	if bases, err := headCommit.MergeBase(baseCommit); err == nil && len(bases) > 0 {
		baseCommit = bases[0]
	}

	changes, err := diffTrees(baseCommit, headCommit)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(changes))
	for _, c := range changes {
		if c.To.Name != "" {
			files = append(files, c.To.Name)
		}
	}
	sort.Strings(files)
	return files, nil
}

func diffTrees(from, to *object.Commit) (object.Changes, error) {
	fromTree, err := from.Tree()
	if err != nil {
		return nil, fmt.Errorf("loading tree %s: %w", from.Hash, err)
	}
	toTree, err := to.Tree()
	if err != nil {
		return nil, fmt.Errorf("loading tree %s: %w", to.Hash, err)
	}
	changes, err := fromTree.Diff(toTree)
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}
	return changes, nil
}

func open(projectPath string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	return repo, nil
}
