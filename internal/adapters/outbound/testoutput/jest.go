package testoutput

import (
	"encoding/json"
	"strings"

	"github.com/qualitygate/qualitygate/internal/domain"
)

type jestSummary struct {
	NumTotalTests   *int `json:"numTotalTests"`
	NumPassedTests  int  `json:"numPassedTests"`
	NumFailedTests  int  `json:"numFailedTests"`
	NumPendingTests int  `json:"numPendingTests"`
	NumTodoTests    int  `json:"numTodoTests"`
	TestResults     []struct {
		Name             string `json:"name"`
		Status           string `json:"status"`
		AssertionResults []struct {
			FullName string `json:"fullName"`
			Status   string `json:"status"`
		} `json:"assertionResults"`
	} `json:"testResults"`
}

// parseJestJSON reads the summary printed by `jest --json`. Jest may print
// console output before the document, so decoding starts at the first line
// that opens an object.
func parseJestJSON(stdout string) (domain.TestRunResult, bool) {
	for _, doc := range jsonCandidates(stdout) {
		var s jestSummary
		if err := json.Unmarshal([]byte(doc), &s); err != nil || s.NumTotalTests == nil {
			continue
		}
		failures := []string{}
		for _, suite := range s.TestResults {
			suiteFailed := false
			for _, a := range suite.AssertionResults {
				if a.Status == "failed" {
					failures = append(failures, a.FullName)
					suiteFailed = true
				}
			}
			if !suiteFailed && suite.Status == "failed" {
				failures = append(failures, suite.Name)
			}
		}
		return domain.NewTestRunResult(
			s.NumPassedTests,
			s.NumFailedTests,
			s.NumPendingTests+s.NumTodoTests,
			failures,
			domain.SourceJestJSON,
		), true
	}
	return domain.TestRunResult{}, false
}

func jsonCandidates(stdout string) []string {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil
	}
	candidates := []string{trimmed}
	if i := strings.Index(trimmed, "\n{"); i >= 0 {
		candidates = append(candidates, strings.TrimSpace(trimmed[i+1:]))
	}
	return candidates
}
