package harness

import (
	"fmt"
	"io"
	"time"
)

// DefaultTestConfiguration returns a default test configuration
func DefaultTestConfiguration() TestConfiguration {
	return TestConfiguration{
		Timeout:  10 * time.Minute,
		Parallel: 1,
		Output:   OutputConsole,
	}
}

// TestFramework holds all components needed for testing
type TestFramework struct {
	Runner   TestRunner
	Loader   CaseLoader
	Reporter TestReporter
}

// NewTestFramework creates a fully configured test framework writing to out
func NewTestFramework(config TestConfiguration, out io.Writer) (*TestFramework, error) {
	if err := ValidateConfiguration(config); err != nil {
		return nil, err
	}

	loader := NewCaseLoader(config.Debug)

	var reporter TestReporter
	switch config.Output {
	case OutputConsole, "":
		reporter = NewTestReporter(out, config.Verbose, config.Debug, config.ReportPath)
	case OutputQuiet:
		reporter = NewQuietReporter(out)
	case OutputJSON:
		reporter = NewJSONReporter(out)
	}

	runner := NewTestRunner(loader, reporter, config.Debug)

	return &TestFramework{
		Runner:   runner,
		Loader:   loader,
		Reporter: reporter,
	}, nil
}

// ValidateConfiguration validates a test configuration
func ValidateConfiguration(config TestConfiguration) error {
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	if config.Parallel < 1 || config.Parallel > 10 {
		return fmt.Errorf("parallel workers must be between 1 and 10, got %d", config.Parallel)
	}

	switch config.Output {
	case OutputConsole, OutputQuiet, OutputJSON, "":
	default:
		return fmt.Errorf("invalid output '%s', must be one of: console, quiet, json", config.Output)
	}

	return nil
}
