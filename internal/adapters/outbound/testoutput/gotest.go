package testoutput

import (
	"bufio"
	"encoding/json"
	"strings"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// goTestEvent is one line of `go test -json` (test2json) output.
type goTestEvent struct {
	Action  string `json:"Action"`
	Package string `json:"Package"`
	Test    string `json:"Test"`
}

// parseGoTestJSON counts terminal test events. A package that fails
// without any failing test (a build error, a panic in TestMain) counts as
// one failure so the run is never reported as clean.
func parseGoTestJSON(stdout string) (domain.TestRunResult, bool) {
	var (
		passed, failed, skipped int
		failures                []string
		seen                    bool
		failedPkgs              []string
	)
	pkgHasFailure := make(map[string]bool)

	sc := bufio.NewScanner(strings.NewReader(stdout))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var ev goTestEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil || ev.Action == "" {
			continue
		}
		if ev.Package == "" && ev.Test == "" {
			continue
		}
		seen = true

		if ev.Test == "" {
			if ev.Action == "fail" {
				failedPkgs = append(failedPkgs, ev.Package)
			}
			continue
		}
		switch ev.Action {
		case "pass":
			passed++
		case "fail":
			failed++
			pkgHasFailure[ev.Package] = true
			failures = append(failures, ev.Test)
		case "skip":
			skipped++
		}
	}
	if !seen {
		return domain.TestRunResult{}, false
	}
	for _, pkg := range failedPkgs {
		if !pkgHasFailure[pkg] {
			failed++
			failures = append(failures, pkg)
		}
	}
	return domain.NewTestRunResult(passed, failed, skipped, nonNil(failures), domain.SourceGoTestJSON), true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
