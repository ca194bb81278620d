package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"vgate/internal/fault"
	"vgate/internal/versiongate"
	"vgate/internal/worker"
	"vgate/pkg/logging"
)

const runnerSubsystem = "Runner"

// testRunner implements the TestRunner interface
type testRunner struct {
	loader   CaseLoader
	reporter TestReporter
	debug    bool
}

// NewTestRunner creates a new test runner
func NewTestRunner(loader CaseLoader, reporter TestReporter, debug bool) TestRunner {
	return &testRunner{
		loader:   loader,
		reporter: reporter,
		debug:    debug,
	}
}

// Run executes cases according to the configuration
func (r *testRunner) Run(ctx context.Context, config TestConfiguration, cases []TestCase) (*TestSuiteResult, error) {
	version := versiongate.Resolve(config.RuntimeVersion)

	result := &TestSuiteResult{
		StartTime:      time.Now(),
		RuntimeVersion: version,
		Configuration:  config,
	}

	r.reporter.ReportStart(config, version)

	filtered := r.loader.FilterCases(cases, config)
	result.TotalCases = len(filtered)
	result.CaseResults = make([]TestCaseResult, 0, len(filtered))

	if len(filtered) == 0 {
		r.finish(result)
		return result, nil
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	if config.Parallel <= 1 {
		// Sequential execution
		w := worker.New("analysis")
		defer func() { w.Stop() }()

		for _, tc := range filtered {
			r.reporter.ReportCaseStart(tc)
			caseResult := r.runCase(ctx, w, tc, version)
			w = renew(w)
			result.CaseResults = append(result.CaseResults, caseResult)

			r.updateCounters(result, caseResult)
			r.reporter.ReportCaseResult(caseResult)

			if config.FailFast && caseResult.Result == ResultFailed {
				logging.Info(runnerSubsystem, "Fail-fast: stopping after %s", tc.Name)
				break
			}
		}
	} else {
		results := r.runCasesParallel(ctx, filtered, config, version)
		result.CaseResults = results

		for _, caseResult := range results {
			r.updateCounters(result, caseResult)
			r.reporter.ReportCaseResult(caseResult)
		}
	}

	r.finish(result)
	return result, nil
}

func (r *testRunner) finish(result *TestSuiteResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	r.reporter.ReportSuiteResult(*result)
}

// runCasesParallel executes cases with a bounded group. Each slot owns a
// worker, so bodies never share a worker goroutine.
func (r *testRunner) runCasesParallel(ctx context.Context, cases []TestCase, config TestConfiguration, version string) []TestCaseResult {
	numWorkers := config.Parallel
	if numWorkers > len(cases) {
		numWorkers = len(cases)
	}

	pool := make(chan *worker.Worker, numWorkers)
	for i := 0; i < numWorkers; i++ {
		pool <- worker.New(fmt.Sprintf("analysis-%d", i))
	}
	defer func() {
		close(pool)
		for w := range pool {
			w.Stop()
		}
	}()

	var (
		stop    atomic.Bool
		mu      sync.Mutex
		results = make([]*TestCaseResult, len(cases))
	)

	var g errgroup.Group
	g.SetLimit(numWorkers)
	for i, tc := range cases {
		g.Go(func() error {
			// Remaining cases are not started once a failure triggered fail-fast
			if stop.Load() {
				return nil
			}

			w := <-pool
			defer func() { pool <- w }()

			if r.debug {
				logging.Debug(runnerSubsystem, "%s executing case: %s", w.Name(), tc.Name)
			}

			mu.Lock()
			r.reporter.ReportCaseStart(tc)
			mu.Unlock()

			caseResult := r.runCase(ctx, w, tc, version)
			w = renew(w)
			results[i] = &caseResult

			if config.FailFast && caseResult.Result == ResultFailed {
				stop.Store(true)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]TestCaseResult, 0, len(cases))
	for _, res := range results {
		if res != nil {
			out = append(out, *res)
		}
	}
	return out
}

// renew replaces a worker whose job was abandoned, since that job may keep the
// goroutine busy indefinitely.
func renew(w *worker.Worker) *worker.Worker {
	if !w.Abandoned() {
		return w
	}
	logging.Warn(runnerSubsystem, "Replacing worker %s after an abandoned case", w.Name())
	w.Stop()
	return worker.New(w.Name())
}

// runCase gates a single case and, if it may run, executes its body on w.
func (r *testRunner) runCase(ctx context.Context, w *worker.Worker, tc TestCase, version string) (result TestCaseResult) {
	result = TestCaseResult{
		Case:      tc,
		StartTime: time.Now(),
	}
	defer func() {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(result.StartTime)
		result.Outcome = result.Result.Outcome().String()
	}()

	decision := versiongate.Decide(tc.Constraint, version)
	result.Decision = decision.String()
	if decision == versiongate.Skip {
		result.Result = ResultSkipped
		result.Reason = fmt.Sprintf("runtime version %s does not satisfy %s", version, tc.Constraint)
		logging.Debug(runnerSubsystem, "Skipping %s: %s", tc.Name, result.Reason)
		return result
	}

	if tc.Body == nil {
		result.Result = ResultError
		result.Error = "case has no body"
		return result
	}

	caseCtx := ctx
	if tc.Timeout > 0 {
		var cancel context.CancelFunc
		caseCtx, cancel = context.WithTimeout(ctx, tc.Timeout)
		defer cancel()
	}

	err := fault.RunGuarded(func() error {
		return w.Do(caseCtx, tc.Body)
	})

	result.Result = classify(err)
	if err != nil {
		result.Cause = err
		result.Error = err.Error()
		logging.Debug(runnerSubsystem, "Case %s %s: %v", tc.Name, result.Result, err)
	}
	return result
}

// classify maps an unwrapped body error onto a result.
func classify(err error) TestResult {
	if err == nil {
		return ResultPassed
	}

	var pe *worker.PanicError
	switch {
	case errors.As(err, &pe):
		return ResultError
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ResultError
	case errors.Is(err, worker.ErrStopped):
		return ResultError
	default:
		return ResultFailed
	}
}

// updateCounters updates the result counters based on a case result
func (r *testRunner) updateCounters(suiteResult *TestSuiteResult, caseResult TestCaseResult) {
	switch caseResult.Result {
	case ResultPassed:
		suiteResult.PassedCases++
	case ResultFailed:
		suiteResult.FailedCases++
	case ResultSkipped:
		suiteResult.SkippedCases++
	case ResultError:
		suiteResult.ErrorCases++
	}
}
