package scoring

import "github.com/qualitygate/qualitygate/internal/domain"

// Complexity returns the complexity score and penalty for n issues.
func (p Policy) Complexity(n int) (score, penalty int) {
	return cappedPenalty(p.ComplexityMax, n, p.ComplexityPenalty)
}

// Smells returns the smells score and penalty for n issues.
func (p Policy) Smells(n int) (score, penalty int) {
	return cappedPenalty(p.SmellsMax, n, p.SmellPenalty)
}

func cappedPenalty(maxPoints, n, perIssue int) (score, penalty int) {
	penalty = min(maxPoints, max(0, n)*perIssue)
	return maxPoints - penalty, penalty
}

// Duplication returns a fractional score and penalty, each rounded to one
// decimal from the unrounded penalty. Their sum can differ from
// DuplicationMax by 0.1.
func (p Policy) Duplication(percentage float64) (score, penalty float64) {
	maxPoints := float64(p.DuplicationMax)
	raw := min(maxPoints, max(0, percentage)*p.DuplicationWeight)
	return max(0, domain.Round1(maxPoints-raw)), domain.Round1(raw)
}

// Coverage maps a coverage percentage onto CoverageBands. There is no
// interpolation between bands.
func (p Policy) Coverage(percentage float64) int {
	return bandPoints(p.CoverageBands, percentage)
}

// TestResults scores the pass rate over passed+failed. Skipped tests do not
// count; no executed tests scores zero.
func (p Policy) TestResults(passed, failed int) int {
	total := passed + failed
	if total <= 0 {
		return 0
	}
	rate := float64(passed) / float64(total) * 100
	return bandPoints(p.ResultsBands, rate)
}

// UnitTests grants full credit only when unit tests exist and none failed.
func (p Policy) UnitTests(found bool, failed int) int {
	if found && failed == 0 {
		return p.UnitTestsMax
	}
	return 0
}

// E2E returns the end-to-end score and max, or nils when e2e tests are not
// required and the metric does not apply.
func (p Policy) E2E(required, found bool) (score, maxPoints *int) {
	if !required {
		return nil, nil
	}
	s, m := 0, p.E2EMax
	if found {
		s = m
	}
	return &s, &m
}

func bandPoints(bands []Band, percentage float64) int {
	for _, b := range bands {
		if percentage >= b.Min {
			return b.Points
		}
	}
	return 0
}
