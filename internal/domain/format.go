package domain

import (
	"path/filepath"
	"strings"
)

// CoverageFormat is the closed set of coverage artifact formats.
type CoverageFormat string

const (
	CoverageUnknown   CoverageFormat = ""
	CoverageCobertura CoverageFormat = "cobertura"
	CoverageLCOV      CoverageFormat = "lcov"
	CoverageIstanbul  CoverageFormat = "istanbul"
)

// DetectCoverageFormat infers the format of a coverage artifact from its name.
// Checks run in a fixed order, so "lcov.json" is LCOV rather than Istanbul.
func DetectCoverageFormat(path string) CoverageFormat {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case path == "":
		return CoverageUnknown
	case strings.HasSuffix(name, ".xml"):
		return CoverageCobertura
	case strings.HasSuffix(name, ".info") || strings.Contains(name, "lcov"):
		return CoverageLCOV
	case strings.HasSuffix(name, ".json"):
		return CoverageIstanbul
	default:
		return CoverageUnknown
	}
}
