package harness

import (
	"context"
	"time"

	"vgate/internal/versiongate"
)

// TestResult represents the result of test execution
type TestResult string

const (
	// ResultPassed indicates the case body completed without error
	ResultPassed TestResult = "PASSED"
	// ResultFailed indicates the case body returned an error
	ResultFailed TestResult = "FAILED"
	// ResultSkipped indicates the version gate decided not to run the case
	ResultSkipped TestResult = "SKIPPED"
	// ResultError indicates the case could not complete (panic, timeout, no body)
	ResultError TestResult = "ERROR"
)

// Outcome maps a result onto the version gate's tri-state: passed cases ran,
// skipped cases were skipped, and failed or errored cases failed.
func (r TestResult) Outcome() versiongate.Outcome {
	switch r {
	case ResultPassed:
		return versiongate.Run
	case ResultSkipped:
		return versiongate.Skip
	default:
		return versiongate.Fail
	}
}

// OutputFormat selects a reporter.
type OutputFormat string

const (
	OutputConsole OutputFormat = "console"
	OutputQuiet   OutputFormat = "quiet"
	OutputJSON    OutputFormat = "json"
)

// TestConfiguration defines the overall test execution configuration
type TestConfiguration struct {
	// RuntimeVersion overrides the detected runtime version when set
	RuntimeVersion string `json:"runtime_version,omitempty"`
	// Timeout is the overall test execution timeout
	Timeout time.Duration `json:"timeout"`
	// Parallel is the number of parallel test workers
	Parallel int `json:"parallel"`
	// FailFast stops execution on first failure
	FailFast bool `json:"fail_fast"`
	// Verbose enables detailed output
	Verbose bool `json:"verbose"`
	// Debug enables debug output
	Debug bool `json:"debug"`
	// ManifestPath is the path to case manifest definitions
	ManifestPath string `json:"manifest_path,omitempty"`
	// ReportPath is the directory to save detailed test reports
	ReportPath string `json:"report_path,omitempty"`
	// Name filters cases by exact name or glob pattern
	Name string `json:"name,omitempty"`
	// Tags filters cases that carry at least one of the tags
	Tags []string `json:"tags,omitempty"`
	// Output selects the reporter
	Output OutputFormat `json:"output,omitempty"`
}

// TestCase is a single test case descriptor. Constraint is the attribute
// record read before dispatch; nil means the case always runs.
type TestCase struct {
	Name        string                          `json:"name"`
	Description string                          `json:"description,omitempty"`
	Tags        []string                        `json:"tags,omitempty"`
	Constraint  *versiongate.Constraint         `json:"constraint,omitempty"`
	Timeout     time.Duration                   `json:"timeout,omitempty"`
	Body        func(ctx context.Context) error `json:"-"`
}

// TestCaseResult represents the result of a single case
type TestCaseResult struct {
	// Case is the case that was executed
	Case TestCase `json:"case"`
	// Result is the overall result of the case
	Result TestResult `json:"result"`
	// Decision is the version gate outcome
	Decision string `json:"decision"`
	// Outcome is the final RUN, SKIP or FAIL state of the case
	Outcome string `json:"outcome"`
	// StartTime when case execution began
	StartTime time.Time `json:"start_time"`
	// EndTime when case execution completed
	EndTime time.Time `json:"end_time"`
	// Duration of case execution
	Duration time.Duration `json:"duration"`
	// Error message if the case failed or had an error
	Error string `json:"error,omitempty"`
	// Reason explains a skip
	Reason string `json:"reason,omitempty"`
	// Cause is the unwrapped error returned by the body
	Cause error `json:"-"`
}

// TestSuiteResult represents the overall result of test suite execution
type TestSuiteResult struct {
	// StartTime when test execution began
	StartTime time.Time `json:"start_time"`
	// EndTime when test execution completed
	EndTime time.Time `json:"end_time"`
	// Duration of test execution
	Duration time.Duration `json:"duration"`
	// RuntimeVersion the cases were gated against
	RuntimeVersion string `json:"runtime_version"`
	// TotalCases is the number of cases selected for execution
	TotalCases int `json:"total_cases"`
	// PassedCases is the number of cases that passed
	PassedCases int `json:"passed_cases"`
	// FailedCases is the number of cases that failed
	FailedCases int `json:"failed_cases"`
	// SkippedCases is the number of cases the version gate skipped
	SkippedCases int `json:"skipped_cases"`
	// ErrorCases is the number of cases that had errors
	ErrorCases int `json:"error_cases"`
	// CaseResults contains individual case results
	CaseResults []TestCaseResult `json:"case_results"`
	// Configuration used for this test run
	Configuration TestConfiguration `json:"configuration"`
}

// Succeeded reports whether no case failed or errored.
func (s *TestSuiteResult) Succeeded() bool {
	return s.FailedCases == 0 && s.ErrorCases == 0
}

// TestRunner interface defines the test execution engine
type TestRunner interface {
	// Run executes cases according to the configuration
	Run(ctx context.Context, config TestConfiguration, cases []TestCase) (*TestSuiteResult, error)
}

// CaseLoader interface defines how manifests are loaded and cases selected
type CaseLoader interface {
	// LoadManifest loads a manifest from a file or directory
	LoadManifest(path string) (*Manifest, error)
	// FilterCases filters cases based on the configuration
	FilterCases(cases []TestCase, config TestConfiguration) []TestCase
}

// TestReporter interface defines how test results are reported
type TestReporter interface {
	// ReportStart is called when test execution begins
	ReportStart(config TestConfiguration, runtimeVersion string)
	// ReportCaseStart is called when a case begins
	ReportCaseStart(tc TestCase)
	// ReportCaseResult is called when a case completes
	ReportCaseResult(result TestCaseResult)
	// ReportSuiteResult is called when all cases complete
	ReportSuiteResult(suiteResult TestSuiteResult)
}
