// Package lint parses linter JSON reports into normalized, classified issues.
package lint

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/classify"
)

// Parsers returns one parser per supported tool, all sharing policy.
func Parsers(policy classify.Policy) map[domain.Tool]domain.LintParser {
	return map[domain.Tool]domain.LintParser{
		domain.ToolRuff:      NewRuff(policy),
		domain.ToolESLint:    NewESLint(policy),
		domain.ToolSwiftLint: NewSwiftLint(policy),
		domain.ToolDetekt:    NewDetekt(policy),
	}
}

// readReport returns the raw report bytes, or false when there is nothing
// to parse. A missing file is normal; an unreadable one is logged.
func readReport(tool domain.Tool, path string) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("lint report not found", "tool", tool, "file", path)
		} else {
			slog.Warn("reading lint report", "tool", tool, "file", path, "error", err)
		}
		return nil, false
	}
	return data, true
}

// decodeEntries decodes a top-level JSON array without committing to the
// shape of its elements, so one bad entry does not spoil the rest.
func decodeEntries(tool domain.Tool, path string, data []byte) []json.RawMessage {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("parsing lint report", "tool", tool, "file", path, "error", err)
		return nil
	}
	return objects(entries)
}

// objects keeps only JSON objects. Decoding null into a struct succeeds
// silently, so it has to be filtered before unmarshalling.
func objects(raws []json.RawMessage) []json.RawMessage {
	out := raws[:0:0]
	for _, raw := range raws {
		if b := bytes.TrimSpace(raw); len(b) > 0 && b[0] == '{' {
			out = append(out, raw)
		}
	}
	return out
}

// collector accumulates classified issues for one tool.
type collector struct {
	tool   domain.Tool
	policy classify.Policy
	issues []domain.Issue
}

func (c *collector) add(file string, line int, code, message string) {
	c.issues = append(c.issues, domain.Issue{
		File:     file,
		Line:     max(0, line),
		Code:     code,
		Message:  message,
		Category: c.policy.Classify(c.tool, code),
		Tool:     c.tool,
	})
}

func (c *collector) report() domain.LintReport {
	issues := c.issues
	if issues == nil {
		issues = []domain.Issue{}
	}
	return domain.LintReport{Tool: c.tool, Issues: issues}
}

func emptyReport(tool domain.Tool) domain.LintReport {
	return domain.LintReport{Tool: tool, Issues: []domain.Issue{}}
}
