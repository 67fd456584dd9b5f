// Package coverage reads coverage artifacts and reduces them to the files
// touched by a change.
package coverage

import (
	"errors"
	"log/slog"
	"os"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/changeset"
)

// Registry dispatches a coverage artifact to the parser for its format.
type Registry struct {
	parsers map[domain.CoverageFormat]domain.CoverageParser
}

// NewRegistry returns a Registry with the Cobertura, LCOV and Istanbul parsers.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[domain.CoverageFormat]domain.CoverageParser)}
	for _, p := range []domain.CoverageParser{NewCobertura(), NewLCOV(), NewIstanbul()} {
		r.parsers[p.Format()] = p
	}
	return r
}

// Parse detects the format of path from its name and parses it. Unknown
// formats and missing files yield an empty report.
func (r *Registry) Parse(path string, changes changeset.Set) domain.CoverageReport {
	if path == "" {
		return emptyReport()
	}
	format := domain.DetectCoverageFormat(path)
	p, ok := r.parsers[format]
	if !ok {
		slog.Warn("unrecognized coverage format", "file", path)
		return emptyReport()
	}
	return p.Parse(path, changes)
}

// Collect parses the main coverage file, then every per-toolchain file that
// exists, and merges them into one report.
func (r *Registry) Collect(coverageFile string, coverageFiles []domain.NamedValue, changes changeset.Set) domain.CoverageReport {
	report := r.Parse(coverageFile, changes)
	for _, nv := range coverageFiles {
		if _, err := os.Stat(nv.Value); err != nil {
			slog.Debug("toolchain coverage file not found", "toolchain", nv.Name, "file", nv.Value)
			continue
		}
		if domain.DetectCoverageFormat(nv.Value) == domain.CoverageUnknown {
			continue
		}
		report.Merge(r.Parse(nv.Value, changes))
	}
	report.Recompute()
	return report
}

func emptyReport() domain.CoverageReport {
	return domain.CoverageReport{
		ByFile:             []domain.CoverageFileEntry{},
		UncoveredFunctions: []string{},
	}
}

// openReport opens path for reading. Missing files are expected and are
// only logged at debug level.
func openReport(format domain.CoverageFormat, path string) (*os.File, bool) {
	if path == "" {
		return nil, false
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("coverage report not found", "format", format, "file", path)
		} else {
			slog.Warn("opening coverage report", "format", format, "file", path, "error", err)
		}
		return nil, false
	}
	return f, true
}

func warnParse(format domain.CoverageFormat, path string, err error) {
	slog.Warn("parsing coverage report", "format", format, "file", path, "error", err)
}
