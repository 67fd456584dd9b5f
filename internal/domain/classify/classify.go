// Package classify maps tool-specific rule codes to scoring categories.
package classify

import (
	"strings"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// MatchMode controls how a rule code is compared against a rule set.
type MatchMode int

const (
	// MatchExact requires the rule code to equal a listed code.
	MatchExact MatchMode = iota
	// MatchSubstring accepts any rule code containing a listed code, so
	// plugin-prefixed ids like "sonarjs/cognitive-complexity" still match.
	MatchSubstring
)

// RuleSet lists the rule codes a tool reports for structural complexity.
type RuleSet struct {
	Complexity []string
	Match      MatchMode
}

func (rs RuleSet) matches(code string) bool {
	if code == "" {
		return false
	}
	for _, c := range rs.Complexity {
		switch rs.Match {
		case MatchSubstring:
			if strings.Contains(code, c) {
				return true
			}
		default:
			if code == c {
				return true
			}
		}
	}
	return false
}

// Policy is the classification table, supplied at construction time to
// every lint parser.
type Policy struct {
	rules map[domain.Tool]RuleSet
}

// NewPolicy builds a Policy from explicit rule sets.
func NewPolicy(rules map[domain.Tool]RuleSet) Policy {
	p := Policy{rules: make(map[domain.Tool]RuleSet, len(rules))}
	for tool, rs := range rules {
		p.rules[tool] = rs
	}
	return p
}

// DefaultPolicy returns the built-in complexity rule sets.
func DefaultPolicy() Policy {
	return NewPolicy(map[domain.Tool]RuleSet{
		domain.ToolRuff: {
			Complexity: []string{"C901", "PLR0915", "PLR0912", "PLR0911"},
		},
		domain.ToolESLint: {
			Complexity: []string{"complexity", "max-depth", "max-nested-callbacks", "max-lines-per-function"},
			Match:      MatchSubstring,
		},
		domain.ToolSwiftLint: {
			Complexity: []string{"cyclomatic_complexity", "function_body_length", "type_body_length", "file_length"},
		},
		domain.ToolDetekt: {
			Complexity: []string{"ComplexMethod", "LongMethod", "LargeClass", "NestedBlockDepth", "CyclomaticComplexMethod"},
		},
	})
}

// WithOverrides returns a copy of p where each listed tool's complexity
// codes are replaced. The tool's match mode is kept.
func (p Policy) WithOverrides(overrides map[string][]string) Policy {
	out := NewPolicy(p.rules)
	for tool, codes := range overrides {
		rs := out.rules[domain.Tool(tool)]
		rs.Complexity = append([]string(nil), codes...)
		out.rules[domain.Tool(tool)] = rs
	}
	return out
}

// Classify returns the category of a finding. Codes outside the tool's
// complexity set, and findings from unknown tools, are smells.
func (p Policy) Classify(tool domain.Tool, code string) domain.Category {
	if rs, ok := p.rules[tool]; ok && rs.matches(code) {
		return domain.CategoryComplexity
	}
	return domain.CategorySmell
}

// RuleSet returns the rule set registered for tool.
func (p Policy) RuleSet(tool domain.Tool) (RuleSet, bool) {
	rs, ok := p.rules[tool]
	return rs, ok
}
