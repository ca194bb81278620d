package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vgate/internal/color"
)

// testReporter implements the TestReporter interface
type testReporter struct {
	out        io.Writer
	verbose    bool
	debug      bool
	reportPath string
}

// NewTestReporter creates a new console reporter
func NewTestReporter(out io.Writer, verbose, debug bool, reportPath string) TestReporter {
	return &testReporter{
		out:        out,
		verbose:    verbose,
		debug:      debug,
		reportPath: reportPath,
	}
}

// ReportStart is called when test execution begins
func (r *testReporter) ReportStart(config TestConfiguration, runtimeVersion string) {
	fmt.Fprintf(r.out, "🧪 Starting vgate\n")
	fmt.Fprintf(r.out, "🏷️  Runtime version: %s\n", runtimeVersion)

	if r.verbose {
		fmt.Fprintf(r.out, "⚙️  Configuration:\n")
		fmt.Fprintf(r.out, "   • Name: %s\n", stringOrDefault(config.Name, "all"))
		fmt.Fprintf(r.out, "   • Tags: %s\n", stringOrDefault(strings.Join(config.Tags, ", "), "all"))
		fmt.Fprintf(r.out, "   • Parallel workers: %d\n", config.Parallel)
		fmt.Fprintf(r.out, "   • Fail fast: %t\n", config.FailFast)
		fmt.Fprintf(r.out, "   • Timeout: %v\n", config.Timeout)
		if config.ManifestPath != "" {
			fmt.Fprintf(r.out, "   • Manifest: %s\n", config.ManifestPath)
		}
		if config.ReportPath != "" {
			fmt.Fprintf(r.out, "   • Report path: %s\n", config.ReportPath)
		}
		fmt.Fprintf(r.out, "\n")
	}
}

// ReportCaseStart is called when a case begins
func (r *testReporter) ReportCaseStart(tc TestCase) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "🎯 Starting case: %s\n", tc.Name)
	if tc.Description != "" {
		fmt.Fprintf(r.out, "   📝 %s\n", tc.Description)
	}
	fmt.Fprintf(r.out, "   🔒 Constraint: %s\n", tc.Constraint)
	if len(tc.Tags) > 0 {
		fmt.Fprintf(r.out, "   🏷️  Tags: %s\n", strings.Join(tc.Tags, ", "))
	}
	if tc.Timeout > 0 {
		fmt.Fprintf(r.out, "   ⏱️  Timeout: %v\n", tc.Timeout)
	}
}

// ReportCaseResult is called when a case completes
func (r *testReporter) ReportCaseResult(result TestCaseResult) {
	symbol := resultSymbol(result.Result)
	label := styleResult(result.Result)

	fmt.Fprintf(r.out, "%s %s %s %s\n", symbol, label, result.Case.Name,
		color.Muted.Render(fmt.Sprintf("(%v)", result.Duration.Round(time.Millisecond))))

	if result.Result == ResultSkipped && r.verbose && result.Reason != "" {
		fmt.Fprintf(r.out, "   %s\n", color.Muted.Render(result.Reason))
	}
	if result.Error != "" {
		fmt.Fprintf(r.out, "   ❌ Error: %s\n", result.Error)
	}
	if r.debug && result.Cause != nil {
		fmt.Fprintf(r.out, "   🔍 Cause type: %T\n", result.Cause)
	}
}

// ReportSuiteResult is called when all cases complete
func (r *testReporter) ReportSuiteResult(suiteResult TestSuiteResult) {
	fmt.Fprintf(r.out, "\n🏁 Test Suite Complete\n")
	fmt.Fprintf(r.out, "⏱️  Duration: %v\n", suiteResult.Duration.Round(time.Millisecond))
	fmt.Fprintf(r.out, "📊 Results:\n")
	fmt.Fprintf(r.out, "   ✅ Passed: %d\n", suiteResult.PassedCases)

	if suiteResult.FailedCases > 0 {
		fmt.Fprintf(r.out, "   ❌ Failed: %d\n", suiteResult.FailedCases)
	}

	if suiteResult.ErrorCases > 0 {
		fmt.Fprintf(r.out, "   💥 Errors: %d\n", suiteResult.ErrorCases)
	}

	if suiteResult.SkippedCases > 0 {
		fmt.Fprintf(r.out, "   ⏭️  Skipped: %d\n", suiteResult.SkippedCases)
	}

	fmt.Fprintf(r.out, "   📈 Total: %d\n", suiteResult.TotalCases)

	// Skipped cases are excluded from the success rate
	successRate := 0.0
	if evaluated := suiteResult.TotalCases - suiteResult.SkippedCases; evaluated > 0 {
		successRate = float64(suiteResult.PassedCases) / float64(evaluated) * 100
	}
	fmt.Fprintf(r.out, "   📏 Success Rate: %.1f%%\n", successRate)

	if suiteResult.Succeeded() {
		fmt.Fprintf(r.out, "\n🎉 All tests passed!\n")
	} else {
		fmt.Fprintf(r.out, "\n💔 Some tests failed\n")
	}

	if r.reportPath != "" {
		path, err := saveDetailedReport(r.reportPath, suiteResult)
		if err != nil {
			fmt.Fprintf(r.out, "⚠️  Failed to save detailed report: %v\n", err)
		} else {
			fmt.Fprintf(r.out, "📄 Detailed report saved to: %s\n", path)
		}
	}
}

// saveDetailedReport saves a detailed JSON report into dir
func saveDetailedReport(dir string, suiteResult TestSuiteResult) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	fullPath := filepath.Join(dir, fmt.Sprintf("vgate-report-%s.json", timestamp))

	jsonData, err := json.MarshalIndent(suiteResult, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	if err := os.WriteFile(fullPath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return fullPath, nil
}

// resultSymbol returns an appropriate symbol for the test result
func resultSymbol(result TestResult) string {
	switch result {
	case ResultPassed:
		return "✅"
	case ResultFailed:
		return "❌"
	case ResultSkipped:
		return "⏭️"
	case ResultError:
		return "💥"
	default:
		return "❓"
	}
}

func styleResult(result TestResult) string {
	switch result {
	case ResultPassed:
		return color.Success.Render(string(result))
	case ResultFailed:
		return color.Error.Render(string(result))
	case ResultSkipped:
		return color.Warning.Render(string(result))
	case ResultError:
		return color.Fatal.Render(string(result))
	default:
		return string(result)
	}
}

// stringOrDefault returns the string if not empty, otherwise returns the default
func stringOrDefault(s, defaultValue string) string {
	if s == "" {
		return defaultValue
	}
	return s
}

// NewQuietReporter creates a reporter that only outputs essential information
func NewQuietReporter(out io.Writer) TestReporter {
	return &quietReporter{out: out}
}

// quietReporter implements minimal output for CI/CD integration
type quietReporter struct {
	out io.Writer
}

func (r *quietReporter) ReportStart(config TestConfiguration, runtimeVersion string) {}

func (r *quietReporter) ReportCaseStart(tc TestCase) {}

func (r *quietReporter) ReportCaseResult(result TestCaseResult) {
	// Only report failures
	if result.Result == ResultFailed || result.Result == ResultError {
		fmt.Fprintf(r.out, "%s %s: %s\n", resultSymbol(result.Result), result.Case.Name, result.Error)
	}
}

func (r *quietReporter) ReportSuiteResult(suiteResult TestSuiteResult) {
	if suiteResult.Succeeded() {
		fmt.Fprintf(r.out, "✅ All %d tests passed (%d skipped)\n", suiteResult.PassedCases, suiteResult.SkippedCases)
	} else {
		fmt.Fprintf(r.out, "❌ %d/%d tests failed\n",
			suiteResult.FailedCases+suiteResult.ErrorCases,
			suiteResult.TotalCases)
	}
}

// NewJSONReporter creates a reporter that outputs JSON for CI/CD integration
func NewJSONReporter(out io.Writer) TestReporter {
	return &jsonReporter{out: out}
}

// jsonReporter implements JSON output for machine consumption
type jsonReporter struct {
	out io.Writer
}

func (r *jsonReporter) ReportStart(config TestConfiguration, runtimeVersion string) {}

func (r *jsonReporter) ReportCaseStart(tc TestCase) {}

func (r *jsonReporter) ReportCaseResult(result TestCaseResult) {}

func (r *jsonReporter) ReportSuiteResult(suiteResult TestSuiteResult) {
	jsonData, err := json.MarshalIndent(suiteResult, "", "  ")
	if err != nil {
		fmt.Fprintf(r.out, `{"error": "Failed to marshal results: %v"}`+"\n", err)
		return
	}
	fmt.Fprintln(r.out, string(jsonData))
}
