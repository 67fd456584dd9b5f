package lint

import (
	"encoding/json"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/classify"
)

type swiftlintEntry struct {
	RuleID string `json:"rule_id"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// SwiftLint parses `swiftlint lint --reporter json`.
type SwiftLint struct {
	policy classify.Policy
}

func NewSwiftLint(policy classify.Policy) *SwiftLint { return &SwiftLint{policy: policy} }

func (p *SwiftLint) Tool() domain.Tool { return domain.ToolSwiftLint }

func (p *SwiftLint) Parse(path string) domain.LintReport {
	data, ok := readReport(domain.ToolSwiftLint, path)
	if !ok {
		return emptyReport(domain.ToolSwiftLint)
	}
	c := collector{tool: domain.ToolSwiftLint, policy: p.policy}
	for _, raw := range decodeEntries(domain.ToolSwiftLint, path, data) {
		var e swiftlintEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		c.add(e.File, e.Line, e.RuleID, e.Reason)
	}
	return c.report()
}
