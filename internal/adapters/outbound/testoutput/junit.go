package testoutput

import (
	"encoding/xml"
	"errors"
	"strings"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// junitSuite matches both <testsuites> and <testsuite>; suites nest
// arbitrarily deep in some reporters.
type junitSuite struct {
	XMLName xml.Name
	Suites  []junitSuite `xml:"testsuite"`
	Cases   []junitCase  `xml:"testcase"`
}

type junitCase struct {
	Name      string     `xml:"name,attr"`
	Classname string     `xml:"classname,attr"`
	Failures  []struct{} `xml:"failure"`
	Errors    []struct{} `xml:"error"`
	Skipped   []struct{} `xml:"skipped"`
}

func (c junitCase) id() string {
	if c.Classname == "" {
		return c.Name
	}
	return c.Classname + "." + c.Name
}

type junitTally struct {
	passed, failed, skipped int
	failures                []string
}

func (t *junitTally) visit(s junitSuite) {
	for _, c := range s.Cases {
		switch {
		case len(c.Failures) > 0 || len(c.Errors) > 0:
			t.failed++
			t.failures = append(t.failures, c.id())
		case len(c.Skipped) > 0:
			t.skipped++
		default:
			t.passed++
		}
	}
	for _, child := range s.Suites {
		t.visit(child)
	}
}

func decodeJUnit(data []byte) (domain.TestRunResult, error) {
	var root junitSuite
	if err := xml.Unmarshal(data, &root); err != nil {
		return domain.TestRunResult{}, err
	}
	if name := root.XMLName.Local; name != "testsuites" && name != "testsuite" {
		return domain.TestRunResult{}, errors.New("root element is <" + name + ">, not a junit test suite")
	}
	t := junitTally{failures: []string{}}
	t.visit(root)
	return domain.NewTestRunResult(t.passed, t.failed, t.skipped, t.failures, domain.SourceJUnitXML), nil
}

// parseJUnitText recognizes JUnit XML written to stdout, as some runners
// do when pointed at /dev/stdout.
func parseJUnitText(stdout string) (domain.TestRunResult, bool) {
	start := strings.Index(stdout, "<?xml")
	if start < 0 {
		start = strings.Index(stdout, "<testsuite")
	}
	if start < 0 {
		return domain.TestRunResult{}, false
	}
	r, err := decodeJUnit([]byte(stdout[start:]))
	if err != nil {
		return domain.TestRunResult{}, false
	}
	return r, true
}
