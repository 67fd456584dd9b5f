package scoring

import "github.com/qualitygate/qualitygate/internal/domain"

// Band awards Points when a percentage is at or above Min. Bands are
// checked in order, so they must be listed from the highest Min down.
type Band struct {
	Min    float64
	Points int
}

// PreviewLimits bound the evidence lists kept in the breakdown.
type PreviewLimits struct {
	Issues             int
	Duplications       int
	UncoveredFunctions int
	Failures           int
	UnitTestFiles      int
}

// Policy holds every constant of the scoring formula: category maxima,
// penalty weights and step-function breakpoints.
type Policy struct {
	ComplexityMax     int
	ComplexityPenalty int
	SmellsMax         int
	SmellPenalty      int
	DuplicationMax    int
	DuplicationWeight float64

	CoverageMax   int
	CoverageBands []Band
	ResultsMax    int
	ResultsBands  []Band

	UnitTestsMax int
	E2EMax       int

	Preview PreviewLimits
}

// DefaultPolicy returns the standard 40/30/30 formula.
func DefaultPolicy() Policy {
	return Policy{
		ComplexityMax:     15,
		ComplexityPenalty: 4,
		SmellsMax:         15,
		SmellPenalty:      3,
		DuplicationMax:    10,
		DuplicationWeight: 1.0,

		CoverageMax: 20,
		CoverageBands: []Band{
			{Min: 80, Points: 20},
			{Min: 60, Points: 15},
			{Min: 40, Points: 10},
			{Min: 20, Points: 5},
		},
		ResultsMax: 10,
		ResultsBands: []Band{
			{Min: 100, Points: 10},
			{Min: 95, Points: 8},
			{Min: 80, Points: 5},
		},

		UnitTestsMax: 20,
		E2EMax:       10,

		Preview: PreviewLimits{
			Issues:             10,
			Duplications:       5,
			UncoveredFunctions: 10,
			Failures:           5,
			UnitTestFiles:      10,
		},
	}
}

// WithOverrides applies user tuning from the quality config.
func (p Policy) WithOverrides(o *domain.ScoringOverrides) Policy {
	if o == nil {
		return p
	}
	if o.ComplexityPenalty != nil {
		p.ComplexityPenalty = *o.ComplexityPenalty
	}
	if o.SmellPenalty != nil {
		p.SmellPenalty = *o.SmellPenalty
	}
	if o.DuplicationWeight != nil {
		p.DuplicationWeight = *o.DuplicationWeight
	}
	if o.IssuePreview != nil {
		p.Preview.Issues = *o.IssuePreview
	}
	return p
}

func (p Policy) codeQualityMax() int {
	return p.ComplexityMax + p.SmellsMax + p.DuplicationMax
}

func (p Policy) testHealthMax() int {
	return p.CoverageMax + p.ResultsMax
}
