package testoutput

import (
	"regexp"
	"strconv"

	"github.com/qualitygate/qualitygate/internal/domain"
)

const maxFailuresPerPattern = 5

var (
	passedRe     = regexp.MustCompile(`(\d+) passed`)
	failedRe     = regexp.MustCompile(`(\d+) failed`)
	skippedRe    = regexp.MustCompile(`(\d+) skipped`)
	jestPassedRe = regexp.MustCompile(`Tests:\s+(\d+)\s+passed`)
	jestFailedRe = regexp.MustCompile(`(\d+)\s+failed`)

	failurePatterns = []*regexp.Regexp{
		regexp.MustCompile(`FAILED\s+(.+?)\s+-`), // pytest short summary
		regexp.MustCompile(`✕\s+(.+)`),           // jest
		regexp.MustCompile(`FAIL\s+(.+)`),        // jest suites, go test
	}
)

// ParseHeuristic scans concatenated stdout and stderr for pytest and Jest
// style summary lines. Counts may be wrong when several runners' output is
// mixed, so the result is marked low confidence.
func ParseHeuristic(stdout, stderr string) domain.TestRunResult {
	combined := stdout + "\n" + stderr

	passed := firstInt(passedRe, combined)
	failed := firstInt(failedRe, combined)
	skipped := firstInt(skippedRe, combined)

	if m := jestPassedRe.FindStringSubmatch(combined); m != nil {
		passed = atoi(m[1])
	}
	if m := jestFailedRe.FindStringSubmatch(combined); m != nil && passed > 0 {
		failed = atoi(m[1])
	}

	failures := []string{}
	for _, re := range failurePatterns {
		for _, m := range re.FindAllStringSubmatch(combined, maxFailuresPerPattern) {
			failures = append(failures, m[1])
		}
		if len(failures) >= maxFailuresPerPattern {
			break
		}
	}

	return domain.NewTestRunResult(passed, failed, skipped, failures, domain.SourceHeuristic)
}

func firstInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	return atoi(m[1])
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
