package lint

import (
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/classify"
)

type detektReport struct {
	Findings map[string]json.RawMessage `json:"findings"`
}

type detektFinding struct {
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Location struct {
		Path string `json:"path"`
		Line int    `json:"line"`
	} `json:"location"`
}

// Detekt parses detekt's JSON report, whose findings are grouped by rule
// set. Rule sets are visited in name order.
type Detekt struct {
	policy classify.Policy
}

func NewDetekt(policy classify.Policy) *Detekt { return &Detekt{policy: policy} }

func (p *Detekt) Tool() domain.Tool { return domain.ToolDetekt }

func (p *Detekt) Parse(path string) domain.LintReport {
	data, ok := readReport(domain.ToolDetekt, path)
	if !ok {
		return emptyReport(domain.ToolDetekt)
	}
	var doc detektReport
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("parsing lint report", "tool", domain.ToolDetekt, "file", path, "error", err)
		return emptyReport(domain.ToolDetekt)
	}

	ruleSets := make([]string, 0, len(doc.Findings))
	for name := range doc.Findings {
		ruleSets = append(ruleSets, name)
	}
	sort.Strings(ruleSets)

	c := collector{tool: domain.ToolDetekt, policy: p.policy}
	for _, name := range ruleSets {
		var findings []json.RawMessage
		if err := json.Unmarshal(doc.Findings[name], &findings); err != nil {
			continue
		}
		for _, raw := range objects(findings) {
			var f detektFinding
			if err := json.Unmarshal(raw, &f); err != nil {
				continue
			}
			c.add(f.Location.Path, f.Location.Line, f.Rule, f.Message)
		}
	}
	return c.report()
}
