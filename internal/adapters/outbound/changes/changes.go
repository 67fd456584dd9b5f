// Package changes provides the list of files touched by the change under
// review, either from a newline-delimited file or from git.
package changes

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// FileList reads one path per line. Blank lines are ignored.
type FileList struct {
	path string
}

func NewFileList(path string) *FileList { return &FileList{path: path} }

// ChangedFiles returns nil without error when no list was given or the file
// does not exist.
func (f *FileList) ChangedFiles() ([]string, error) {
	if f.path == "" {
		return nil, nil
	}
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening changed files list: %w", err)
	}
	defer file.Close()

	var files []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			files = append(files, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading changed files list: %w", err)
	}
	return files, nil
}

// GitDiff lists files changed on HEAD relative to a base revision.
type GitDiff struct {
	git         domain.GitInfo
	projectPath string
	baseRef     string
}

func NewGitDiff(git domain.GitInfo, projectPath, baseRef string) *GitDiff {
	return &GitDiff{git: git, projectPath: projectPath, baseRef: baseRef}
}

func (g *GitDiff) ChangedFiles() ([]string, error) {
	return g.git.ChangedFiles(g.projectPath, g.baseRef)
}

// List is a change set given inline, e.g. by an MCP client.
type List []string

// ParseList splits a comma-separated path list, dropping blanks.
func ParseList(csv string) List {
	var out List
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (l List) ChangedFiles() ([]string, error) { return l, nil }
