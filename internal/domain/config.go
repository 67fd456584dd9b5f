package domain

import "fmt"

// DefaultThreshold is the pass mark used when neither the command line nor
// the quality config sets one.
const DefaultThreshold = 70

// QualityConfig holds the quality gate configuration loaded from .quality.yaml.
// The zero value disables test execution and scores with defaults.
type QualityConfig struct {
	Threshold *int              `yaml:"threshold" json:"threshold,omitempty"`
	Tests     TestsConfig       `yaml:"-"         json:"tests"`
	E2E       E2EConfig         `yaml:"e2e"       json:"e2e"`
	Lint      LintConfig        `yaml:"lint"      json:"lint,omitempty"`
	Scoring   *ScoringOverrides `yaml:"scoring"   json:"scoring,omitempty"`
}

// TestsConfig controls the test stage. Commands, CoverageFiles and
// JUnitFiles keep the order they were written in.
type TestsConfig struct {
	Enabled       bool         `json:"enabled"`
	Setup         []string     `json:"setup,omitempty"`
	Command       string       `json:"command,omitempty"`
	Commands      []NamedValue `json:"commands,omitempty"`
	CoverageFile  string       `json:"coverage_file,omitempty"`
	CoverageFiles []NamedValue `json:"coverage_files,omitempty"`
	JUnitFiles    []NamedValue `json:"junit_files,omitempty"`
}

// NamedValue is one toolchain entry of an ordered map, e.g. python: pytest.
type NamedValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// JUnitFile returns the JUnit report configured for toolchain, if any.
func (t TestsConfig) JUnitFile(toolchain string) string {
	for _, nv := range t.JUnitFiles {
		if nv.Name == toolchain {
			return nv.Value
		}
	}
	return ""
}

type E2EConfig struct {
	Required bool `yaml:"required" json:"required"`
}

// LintConfig replaces the built-in complexity rule sets per tool.
type LintConfig struct {
	ComplexityRules map[string][]string `yaml:"complexity_rules" json:"complexity_rules,omitempty"`
}

// ScoringOverrides tunes the scoring policy. Nil fields keep the default.
type ScoringOverrides struct {
	ComplexityPenalty *int     `yaml:"complexity_penalty" json:"complexity_penalty,omitempty"`
	SmellPenalty      *int     `yaml:"smell_penalty"      json:"smell_penalty,omitempty"`
	DuplicationWeight *float64 `yaml:"duplication_weight" json:"duplication_weight,omitempty"`
	IssuePreview      *int     `yaml:"issue_preview"      json:"issue_preview,omitempty"`
}

// DefaultConfig returns the empty configuration.
func DefaultConfig() QualityConfig {
	return QualityConfig{}
}

// EffectiveThreshold resolves the pass mark: an explicit flag value wins,
// then the config, then DefaultThreshold.
func (c QualityConfig) EffectiveThreshold(flag *int) int {
	switch {
	case flag != nil:
		return *flag
	case c.Threshold != nil:
		return *c.Threshold
	default:
		return DefaultThreshold
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c QualityConfig) Validate() error {
	if c.Threshold != nil && (*c.Threshold < 0 || *c.Threshold > 100) {
		return fmt.Errorf("threshold = %d (must be between 0 and 100)", *c.Threshold)
	}

	for tool := range c.Lint.ComplexityRules {
		if !IsValidTool(tool) {
			return fmt.Errorf("unknown tool %q in lint.complexity_rules", tool)
		}
	}

	for _, nv := range c.Tests.Commands {
		if nv.Value == "" {
			return fmt.Errorf("tests.commands[%q] must not be empty", nv.Name)
		}
	}

	if c.Scoring != nil {
		if err := c.Scoring.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s ScoringOverrides) validate() error {
	intFields := map[string]*int{
		"complexity_penalty": s.ComplexityPenalty,
		"smell_penalty":      s.SmellPenalty,
		"issue_preview":      s.IssuePreview,
	}
	for name, ptr := range intFields {
		if ptr != nil && *ptr < 0 {
			return fmt.Errorf("scoring.%s must be >= 0 (got %d)", name, *ptr)
		}
	}
	if s.DuplicationWeight != nil && *s.DuplicationWeight < 0 {
		return fmt.Errorf("scoring.duplication_weight must be >= 0 (got %.2f)", *s.DuplicationWeight)
	}
	return nil
}
