// Package duplication reads jscpd reports. Duplication is measured across
// the whole repository and is never scoped to the change set.
package duplication

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/qualitygate/qualitygate/internal/domain"
)

type jscpdReport struct {
	Statistics struct {
		Total struct {
			Percentage      float64 `json:"percentage"`
			Lines           int     `json:"lines"`
			DuplicatedLines int     `json:"duplicatedLines"`
		} `json:"total"`
	} `json:"statistics"`
	Duplicates []json.RawMessage `json:"duplicates"`
}

type jscpdDuplicate struct {
	FirstFile struct {
		Name string `json:"name"`
	} `json:"firstFile"`
	SecondFile struct {
		Name string `json:"name"`
	} `json:"secondFile"`
	Lines  int `json:"lines"`
	Tokens int `json:"tokens"`
}

// JSCPD implements domain.DuplicationParser for jscpd's JSON reporter.
type JSCPD struct{}

func NewJSCPD() *JSCPD { return &JSCPD{} }

func (p *JSCPD) Parse(path string) domain.DuplicationReport {
	report := domain.DuplicationReport{Entries: []domain.DuplicationEntry{}}
	if path == "" {
		return report
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("reading duplication report", "file", path, "error", err)
		}
		return report
	}

	var doc jscpdReport
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("parsing duplication report", "file", path, "error", err)
		return report
	}

	total := doc.Statistics.Total
	report.Percentage = min(100, max(0, total.Percentage))
	report.TotalLines = total.Lines
	report.DuplicatedLines = total.DuplicatedLines
	for _, raw := range doc.Duplicates {
		if b := bytes.TrimSpace(raw); len(b) == 0 || b[0] != '{' {
			continue
		}
		var d jscpdDuplicate
		if err := json.Unmarshal(raw, &d); err != nil {
			continue
		}
		report.Entries = append(report.Entries, domain.DuplicationEntry{
			FirstFile:  d.FirstFile.Name,
			SecondFile: d.SecondFile.Name,
			Lines:      d.Lines,
			Tokens:     d.Tokens,
		})
	}
	return report
}
