package testoutput_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/testoutput"
	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristic_Pytest(t *testing.T) {
	out := `============ short test summary info ============
FAILED tests/test_app.py::test_login - AssertionError: boom
FAILED tests/test_app.py::test_logout - KeyError
======= 2 failed, 18 passed, 1 skipped in 0.42s =======`

	r := testoutput.ParseHeuristic(out, "")

	assert.Equal(t, 18, r.TestsPassed)
	assert.Equal(t, 2, r.TestsFailed)
	assert.Equal(t, 1, r.TestsSkipped)
	assert.Equal(t, 21, r.TestsRun)
	assert.Equal(t, []string{"tests/test_app.py::test_login", "tests/test_app.py::test_logout"}, r.Failures[:2])
	assert.Equal(t, domain.SourceHeuristic, r.Source)
	assert.Equal(t, domain.ConfidenceLow, r.Confidence)
}

func TestHeuristic_JestSummary(t *testing.T) {
	stderr := `FAIL src/cart.test.js
  ✕ adds items (5 ms)
Tests:       3 failed, 12 passed, 15 total`

	r := testoutput.ParseHeuristic("", stderr)

	assert.Equal(t, 12, r.TestsPassed)
	assert.Equal(t, 3, r.TestsFailed)
	assert.Equal(t, 15, r.TestsRun)
	assert.Equal(t, []string{"adds items (5 ms)", "src/cart.test.js"}, r.Failures)
}

func TestHeuristic_JestPassedOverridesEarlierCount(t *testing.T) {
	out := "4 passed\nTests:  9 passed, 9 total"
	r := testoutput.ParseHeuristic(out, "")
	assert.Equal(t, 9, r.TestsPassed)
}

func TestHeuristic_FailureCap(t *testing.T) {
	out := ""
	for i := 0; i < 8; i++ {
		out += "FAILED t" + string(rune('a'+i)) + " - x\n"
	}
	out += "FAIL pkg/one\n"

	r := testoutput.ParseHeuristic(out, "")
	assert.Len(t, r.Failures, 5, "first pattern fills the cap and stops")
}

func TestHeuristic_NothingRecognized(t *testing.T) {
	r := testoutput.ParseHeuristic("hello", "world")
	assert.Zero(t, r.TestsRun)
	assert.NotNil(t, r.Failures)
}

func TestParseOutput_GoTestJSON(t *testing.T) {
	out := `{"Action":"start","Package":"example.com/a"}
{"Action":"run","Package":"example.com/a","Test":"TestOK"}
{"Action":"output","Package":"example.com/a","Test":"TestOK","Output":"=== RUN   TestOK\n"}
{"Action":"pass","Package":"example.com/a","Test":"TestOK","Elapsed":0}
{"Action":"fail","Package":"example.com/a","Test":"TestBad","Elapsed":0}
{"Action":"skip","Package":"example.com/a","Test":"TestLater","Elapsed":0}
{"Action":"fail","Package":"example.com/a","Elapsed":0.01}
{"Action":"output","Package":"example.com/b","Output":"# example.com/b\n"}
{"Action":"fail","Package":"example.com/b","Elapsed":0}`

	r := testoutput.ParseOutput(out, "")

	assert.Equal(t, domain.SourceGoTestJSON, r.Source)
	assert.Equal(t, domain.ConfidenceHigh, r.Confidence)
	assert.Equal(t, 1, r.TestsPassed)
	assert.Equal(t, 2, r.TestsFailed, "package b failed to build")
	assert.Equal(t, 1, r.TestsSkipped)
	assert.Equal(t, []string{"TestBad", "example.com/b"}, r.Failures)
}

func TestParseOutput_JestJSON(t *testing.T) {
	out := `console.log src/app.js
{"numTotalTests":4,"numPassedTests":2,"numFailedTests":1,"numPendingTests":1,"numTodoTests":0,
"testResults":[{"name":"/repo/src/app.test.js","status":"failed","assertionResults":[
{"fullName":"app renders","status":"passed"},{"fullName":"app saves","status":"failed"}]}]}`

	r := testoutput.ParseOutput(out, "")

	assert.Equal(t, domain.SourceJestJSON, r.Source)
	assert.Equal(t, 2, r.TestsPassed)
	assert.Equal(t, 1, r.TestsFailed)
	assert.Equal(t, 1, r.TestsSkipped)
	assert.Equal(t, 4, r.TestsRun)
	assert.Equal(t, []string{"app saves"}, r.Failures)
}

const junitDoc = `<?xml version="1.0" encoding="UTF-8"?>
<testsuites>
  <testsuite name="outer">
    <testcase classname="tests.test_app" name="test_ok"/>
    <testsuite name="inner">
      <testcase classname="tests.test_app" name="test_bad"><failure message="boom"/></testcase>
      <testcase name="test_err"><error/></testcase>
      <testcase name="test_skip"><skipped/></testcase>
    </testsuite>
  </testsuite>
</testsuites>`

func TestParseOutput_JUnitOnStdout(t *testing.T) {
	r := testoutput.ParseOutput("collected 4 items\n"+junitDoc, "")

	assert.Equal(t, domain.SourceJUnitXML, r.Source)
	assert.Equal(t, 1, r.TestsPassed)
	assert.Equal(t, 2, r.TestsFailed)
	assert.Equal(t, 1, r.TestsSkipped)
	assert.Equal(t, []string{"tests.test_app.test_bad", "test_err"}, r.Failures)
}

func TestParseOutput_FallsBackToHeuristic(t *testing.T) {
	r := testoutput.ParseOutput("===== 3 passed in 0.1s =====", "")
	assert.Equal(t, domain.SourceHeuristic, r.Source)
	assert.Equal(t, 3, r.TestsPassed)
}

func TestParseJUnitFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "junit.xml")
	require.NoError(t, os.WriteFile(p, []byte(junitDoc), 0644))

	r, ok := testoutput.ParseJUnitFile(p)
	require.True(t, ok)
	assert.Equal(t, 4, r.TestsRun)

	_, ok = testoutput.ParseJUnitFile(filepath.Join(dir, "missing.xml"))
	assert.False(t, ok)

	other := filepath.Join(dir, "coverage.xml")
	require.NoError(t, os.WriteFile(other, []byte(`<coverage/>`), 0644))
	_, ok = testoutput.ParseJUnitFile(other)
	assert.False(t, ok)
}

func TestParseJUnitFile_SingleSuiteRoot(t *testing.T) {
	p := filepath.Join(t.TempDir(), "junit.xml")
	require.NoError(t, os.WriteFile(p, []byte(`<testsuite><testcase name="a"/><testcase name="b"/></testsuite>`), 0644))

	r, ok := testoutput.ParseJUnitFile(p)
	require.True(t, ok)
	assert.Equal(t, 2, r.TestsPassed)
}
