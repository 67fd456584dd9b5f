// Package discovery finds unit and end-to-end test files in a working tree.
package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// DefaultPatterns are basename globs that identify test files.
var DefaultPatterns = []string{
	"test_*.py", "*_test.py",
	"*.test.js", "*.spec.js", "*.test.ts", "*.spec.ts",
	"*Test.kt", "*Test.java",
	"*Tests.swift", "*Spec.swift",
	"*_test.go",
}

// DefaultExcludes are gitignore-style patterns for dependency and build
// directories that never hold the project's own tests.
var DefaultExcludes = []string{
	"node_modules/", "venv/", ".venv/", "__pycache__/", "dist/", "build/", ".git/",
}

var e2eMarkers = []string{"e2e", "integration", "cypress", "playwright", "selenium"}

// FileDiscoverer implements domain.TestDiscoverer by walking the filesystem.
type FileDiscoverer struct {
	patterns []string
	excludes []string
}

func New() *FileDiscoverer {
	return &FileDiscoverer{patterns: DefaultPatterns, excludes: DefaultExcludes}
}

// WithExcludes adds gitignore-style exclusion patterns.
func (d *FileDiscoverer) WithExcludes(patterns ...string) *FileDiscoverer {
	out := *d
	out.excludes = append(append([]string(nil), d.excludes...), patterns...)
	return &out
}

// Discover walks root and sorts test files into unit and e2e. Paths are
// relative to root, slash-separated and sorted. The repository's own
// .gitignore files are honored as well.
func (d *FileDiscoverer) Discover(root string) domain.TestPresence {
	matcher := d.matcher(root)
	var unit, e2e []string

	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		parts := strings.Split(rel, string(filepath.Separator))

		if entry.IsDir() {
			if matcher.Match(parts, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher.Match(parts, false) || !d.isTestFile(entry.Name()) {
			return nil
		}

		rel = filepath.ToSlash(rel)
		if isE2E(rel) {
			e2e = append(e2e, rel)
		} else {
			unit = append(unit, rel)
		}
		return nil
	})

	sort.Strings(unit)
	sort.Strings(e2e)
	return domain.TestPresence{
		UnitTestsFound: len(unit) > 0,
		UnitTestsCount: len(unit),
		UnitTestFiles:  nonNil(unit),
		E2ETestsFound:  len(e2e) > 0,
		E2ETestsCount:  len(e2e),
		E2ETestFiles:   nonNil(e2e),
	}
}

func (d *FileDiscoverer) matcher(root string) gitignore.Matcher {
	patterns := make([]gitignore.Pattern, 0, len(d.excludes))
	for _, p := range d.excludes {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}
	if repoPatterns, err := gitignore.ReadPatterns(osfs.New(root), nil); err == nil {
		patterns = append(patterns, repoPatterns...)
	}
	return gitignore.NewMatcher(patterns)
}

func (d *FileDiscoverer) isTestFile(name string) bool {
	for _, p := range d.patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func isE2E(rel string) bool {
	lower := strings.ToLower(rel)
	for _, m := range e2eMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
