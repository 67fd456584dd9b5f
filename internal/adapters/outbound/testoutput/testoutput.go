// Package testoutput extracts pass/fail/skip counts from test runner output.
//
// Structured formats are recognized first: go test -json event streams, Jest
// --json summaries and JUnit XML. Free text falls back to a regex heuristic
// whose result is marked low confidence.
package testoutput

import (
	"errors"
	"log/slog"
	"os"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// Parser adapts the package functions to domain.TestOutputParser.
type Parser struct{}

func NewParser() Parser { return Parser{} }

func (Parser) ParseOutput(stdout, stderr string) domain.TestRunResult {
	return ParseOutput(stdout, stderr)
}

func (Parser) ParseJUnitFile(path string) (domain.TestRunResult, bool) {
	return ParseJUnitFile(path)
}

// ParseOutput interprets the captured output of one test command.
func ParseOutput(stdout, stderr string) domain.TestRunResult {
	if r, ok := parseGoTestJSON(stdout); ok {
		return r
	}
	if r, ok := parseJestJSON(stdout); ok {
		return r
	}
	if r, ok := parseJUnitText(stdout); ok {
		return r
	}
	return ParseHeuristic(stdout, stderr)
}

// ParseJUnitFile reads a JUnit XML report written by a test runner. It
// returns false when the file is missing or is not JUnit XML.
func ParseJUnitFile(path string) (domain.TestRunResult, bool) {
	if path == "" {
		return domain.TestRunResult{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("reading junit report", "file", path, "error", err)
		}
		return domain.TestRunResult{}, false
	}
	r, err := decodeJUnit(data)
	if err != nil {
		slog.Warn("parsing junit report", "file", path, "error", err)
		return domain.TestRunResult{}, false
	}
	return r, true
}
