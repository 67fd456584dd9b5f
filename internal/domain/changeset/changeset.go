// Package changeset decides whether a path reported by a coverage tool
// refers to a file in the change under review.
//
// Tools report paths relative to different roots (repository root, source
// root, absolute). Matching is permissive: after normalization two paths
// correlate when either is a suffix or a substring of the other. Short,
// generic names can over-match across directories; missed coverage costs
// more than an occasional extra file.
package changeset

import (
	"path"
	"strings"
)

// Normalize unifies separators and flattens "." and ".." segments.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// Correlates reports whether candidate refers to the changed file.
// Empty paths never correlate.
func Correlates(changed, candidate string) bool {
	c := Normalize(changed)
	f := Normalize(candidate)
	if c == "" || f == "" || c == "." || f == "." {
		return false
	}
	return strings.HasSuffix(f, c) ||
		strings.HasSuffix(c, f) ||
		strings.Contains(c, f) ||
		strings.Contains(f, c)
}

// Set is the list of files touched by a change.
type Set struct {
	files []string
}

// New builds a Set, dropping blanks and duplicates after normalization.
func New(files []string) Set {
	seen := make(map[string]bool, len(files))
	var s Set
	for _, f := range files {
		n := Normalize(f)
		if n == "" || n == "." || seen[n] {
			continue
		}
		seen[n] = true
		s.files = append(s.files, n)
	}
	return s
}

// Contains reports whether candidate correlates with any changed file.
// An empty Set contains nothing.
func (s Set) Contains(candidate string) bool {
	for _, f := range s.files {
		if Correlates(f, candidate) {
			return true
		}
	}
	return false
}

func (s Set) Len() int { return len(s.files) }

// Files returns the normalized changed paths in input order.
func (s Set) Files() []string {
	return append([]string(nil), s.files...)
}
