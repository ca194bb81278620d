// Package fault restores the original failure of a job that was interrupted
// on a worker goroutine.
//
// Jobs run on a dedicated worker. When that worker is interrupted while a job
// is failing, the failure comes back wrapped in an InterruptedError, which
// hides the actionable cause from whoever reports the test result.
// RunGuarded strips that wrapper.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInterrupted matches any *InterruptedError via errors.Is.
var ErrInterrupted = errors.New("interrupted on worker")

// InterruptedError carries a failure across the worker goroutine boundary.
type InterruptedError struct {
	// Op names the worker or operation that was interrupted.
	Op string
	// Cause is the failure the job produced. It may be nil.
	Cause error
}

func (e *InterruptedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Op, ErrInterrupted)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrInterrupted, e.Cause)
}

func (e *InterruptedError) Unwrap() error {
	return e.Cause
}

func (e *InterruptedError) Is(target error) bool {
	return target == ErrInterrupted
}

// Unwrap returns the recorded cause if err is an *InterruptedError with a
// non-nil Cause. When the wrapper sits deeper in the chain, the outer context
// is kept: the result reads as err with the wrapper's text replaced by the
// cause, and it unwraps to the cause. Any other error, including nil and a
// wrapper without a cause, is returned unchanged.
func Unwrap(err error) error {
	var ie *InterruptedError
	if !errors.As(err, &ie) || ie.Cause == nil {
		return err
	}
	if err == error(ie) {
		return ie.Cause
	}
	return &unwrappedError{
		msg:   strings.Replace(err.Error(), ie.Error(), ie.Cause.Error(), 1),
		cause: ie.Cause,
	}
}

// unwrappedError is an outer error whose nested wrapper was stripped.
type unwrappedError struct {
	msg   string
	cause error
}

func (e *unwrappedError) Error() string {
	return e.msg
}

func (e *unwrappedError) Unwrap() error {
	return e.cause
}

// RunGuarded executes body and passes its error through Unwrap.
func RunGuarded(body func() error) error {
	return Unwrap(body())
}
