package lint

import (
	"encoding/json"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/classify"
)

type eslintFile struct {
	FilePath string            `json:"filePath"`
	Messages []json.RawMessage `json:"messages"`
}

type eslintMessage struct {
	RuleID  *string `json:"ruleId"`
	Line    int     `json:"line"`
	Message string  `json:"message"`
}

// ESLint parses `eslint -f json`. Parse errors carry a null ruleId and are
// recorded with an empty code.
type ESLint struct {
	policy classify.Policy
}

func NewESLint(policy classify.Policy) *ESLint { return &ESLint{policy: policy} }

func (p *ESLint) Tool() domain.Tool { return domain.ToolESLint }

func (p *ESLint) Parse(path string) domain.LintReport {
	data, ok := readReport(domain.ToolESLint, path)
	if !ok {
		return emptyReport(domain.ToolESLint)
	}
	c := collector{tool: domain.ToolESLint, policy: p.policy}
	for _, raw := range decodeEntries(domain.ToolESLint, path, data) {
		var f eslintFile
		if err := json.Unmarshal(raw, &f); err != nil {
			continue
		}
		for _, rawMsg := range objects(f.Messages) {
			var m eslintMessage
			if err := json.Unmarshal(rawMsg, &m); err != nil {
				continue
			}
			code := ""
			if m.RuleID != nil {
				code = *m.RuleID
			}
			c.add(f.FilePath, m.Line, code, m.Message)
		}
	}
	return c.report()
}
