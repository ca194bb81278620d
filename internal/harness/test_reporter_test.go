package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSuite() TestSuiteResult {
	return TestSuiteResult{
		Duration:       1500 * time.Millisecond,
		RuntimeVersion: "go1.24.3",
		TotalCases:     3,
		PassedCases:    1,
		FailedCases:    1,
		SkippedCases:   1,
		CaseResults: []TestCaseResult{
			{Case: TestCase{Name: "rename"}, Result: ResultPassed, Decision: "RUN"},
			{Case: TestCase{Name: "extract"}, Result: ResultFailed, Decision: "RUN", Error: "boom", Cause: errors.New("boom")},
			{Case: TestCase{Name: "generics"}, Result: ResultSkipped, Decision: "SKIP", Reason: "runtime version go1.24.3 does not satisfy matches=go1.25"},
		},
	}
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewTestReporter(&buf, true, true, "")

	config := DefaultTestConfiguration()
	config.Tags = []string{"rename"}
	reporter.ReportStart(config, "go1.24.3")
	reporter.ReportCaseStart(TestCase{Name: "rename", Description: "Renames a local"})
	for _, r := range sampleSuite().CaseResults {
		reporter.ReportCaseResult(r)
	}
	reporter.ReportSuiteResult(sampleSuite())

	out := buf.String()
	assert.Contains(t, out, "Runtime version: go1.24.3")
	assert.Contains(t, out, "Tags: rename")
	assert.Contains(t, out, "Renames a local")
	assert.Contains(t, out, "Constraint: any")
	assert.Contains(t, out, "PASSED rename")
	assert.Contains(t, out, "FAILED extract")
	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, "Cause type: *errors.errorString")
	assert.Contains(t, out, "SKIPPED generics")
	assert.Contains(t, out, "does not satisfy matches=go1.25")
	assert.Contains(t, out, "Skipped: 1")
	assert.Contains(t, out, "Success Rate: 50.0%")
	assert.Contains(t, out, "Some tests failed")
}

func TestConsoleReporter_SavesReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	var buf bytes.Buffer
	reporter := NewTestReporter(&buf, false, false, dir)

	reporter.ReportSuiteResult(sampleSuite())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, buf.String(), "Detailed report saved to")

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	var decoded TestSuiteResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.SkippedCases)
	assert.Equal(t, "go1.24.3", decoded.RuntimeVersion)
}

func TestQuietReporter(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewQuietReporter(&buf)

	for _, r := range sampleSuite().CaseResults {
		reporter.ReportCaseResult(r)
	}
	reporter.ReportSuiteResult(sampleSuite())

	out := buf.String()
	assert.Contains(t, out, "extract: boom")
	assert.NotContains(t, out, "rename")
	assert.NotContains(t, out, "generics")
	assert.Contains(t, out, "1/3 tests failed")

	buf.Reset()
	reporter.ReportSuiteResult(TestSuiteResult{TotalCases: 2, PassedCases: 1, SkippedCases: 1})
	assert.Equal(t, "✅ All 1 tests passed (1 skipped)\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewJSONReporter(&buf)
	reporter.ReportSuiteResult(sampleSuite())

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "go1.24.3", decoded["runtime_version"])
	assert.EqualValues(t, 1, decoded["failed_cases"])
}
