package lint

import (
	"encoding/json"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/classify"
)

type ruffEntry struct {
	Code     string `json:"code"`
	Filename string `json:"filename"`
	Location struct {
		Row int `json:"row"`
	} `json:"location"`
	Message string `json:"message"`
}

// Ruff parses `ruff check --output-format json`.
type Ruff struct {
	policy classify.Policy
}

func NewRuff(policy classify.Policy) *Ruff { return &Ruff{policy: policy} }

func (p *Ruff) Tool() domain.Tool { return domain.ToolRuff }

func (p *Ruff) Parse(path string) domain.LintReport {
	data, ok := readReport(domain.ToolRuff, path)
	if !ok {
		return emptyReport(domain.ToolRuff)
	}
	c := collector{tool: domain.ToolRuff, policy: p.policy}
	for _, raw := range decodeEntries(domain.ToolRuff, path, data) {
		var e ruffEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		c.add(e.Filename, e.Location.Row, e.Code, e.Message)
	}
	return c.report()
}
