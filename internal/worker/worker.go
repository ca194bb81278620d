// Package worker runs jobs one at a time on a dedicated goroutine.
//
// Analysis jobs share state that is not safe for concurrent use, so every job
// submitted to a Worker executes on the same goroutine in submission order.
// Submit hands the job's outcome back as a Result carrying the original
// error value. Do keeps the older contract where a failure that happens while
// the worker is being interrupted arrives wrapped in a
// *fault.InterruptedError.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"vgate/internal/fault"
	"vgate/pkg/logging"
)

const subsystem = "Worker"

// ErrStopped is returned for jobs submitted to, or still queued on, a stopped worker.
var ErrStopped = errors.New("worker stopped")

// PanicError is returned when a job panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("job panicked: %v", e.Value)
}

// Result is the outcome of a single job.
type Result struct {
	// Err is the error the job returned, unmodified.
	Err error
	// Interrupted is set when the job's context was cancelled before it returned.
	Interrupted bool
	// Duration is the time spent executing the job.
	Duration time.Duration
}

type request struct {
	ctx    context.Context
	job    func(context.Context) error
	result chan Result
}

const (
	// DefaultAbandonGrace is how long Submit waits for a cancelled job to return.
	DefaultAbandonGrace = time.Second
	// DefaultStopTimeout bounds how long Stop waits for the running job.
	DefaultStopTimeout = 5 * time.Second
)

// Worker owns a single goroutine that executes jobs.
type Worker struct {
	name         string
	abandonGrace time.Duration
	stopTimeout  time.Duration
	jobs         chan *request
	ctx          context.Context
	cancel       context.CancelFunc
	done         chan struct{}
	stopOnce     sync.Once
	abandoned    atomic.Bool
}

// New starts a worker goroutine. Stop must be called to release it.
func New(name string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		name:         name,
		abandonGrace: DefaultAbandonGrace,
		stopTimeout:  DefaultStopTimeout,
		jobs:         make(chan *request),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	go w.loop()
	logging.Debug(subsystem, "started worker %s", name)
	return w
}

// Name returns the worker name used in wrapped errors.
func (w *Worker) Name() string {
	return w.name
}

// Abandoned reports whether Submit gave up on a job that ignored
// cancellation. An abandoned worker stays busy until that job returns, so
// callers should stop it and start a new one.
func (w *Worker) Abandoned() bool {
	return w.abandoned.Load()
}

// Stop interrupts the running job and waits for the worker goroutine to exit.
// The wait is skipped for an abandoned worker and otherwise bounded by the
// stop timeout; a goroutine still running after that is left behind.
// It is safe to call more than once.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.cancel()
		if w.abandoned.Load() {
			logging.Warn(subsystem, "stopped worker %s without waiting for its abandoned job", w.name)
			return
		}

		timer := time.NewTimer(w.stopTimeout)
		defer timer.Stop()
		select {
		case <-w.done:
			logging.Debug(subsystem, "stopped worker %s", w.name)
		case <-timer.C:
			logging.Warn(subsystem, "worker %s did not exit within %v; leaving it behind", w.name, w.stopTimeout)
		}
	})
}

// Submit runs job on the worker and waits for it. If ctx is done before the
// job returns, the job gets the abandon grace period to report its own
// failure; after that Submit reports ctx.Err() and the job keeps the worker
// busy until it observes the cancellation.
func (w *Worker) Submit(ctx context.Context, job func(context.Context) error) Result {
	req := &request{ctx: ctx, job: job, result: make(chan Result, 1)}

	select {
	case w.jobs <- req:
	case <-w.ctx.Done():
		return Result{Err: ErrStopped}
	case <-ctx.Done():
		return Result{Err: ctx.Err(), Interrupted: true}
	}

	select {
	case res := <-req.result:
		return res
	case <-ctx.Done():
	}

	timer := time.NewTimer(w.abandonGrace)
	defer timer.Stop()
	select {
	case res := <-req.result:
		return res
	case <-timer.C:
		w.abandoned.Store(true)
		logging.Warn(subsystem, "abandoned job on %s: it did not return within %v of cancellation", w.name, w.abandonGrace)
		return Result{Err: ctx.Err(), Interrupted: true}
	}
}

// Do runs job on the worker. A job failure observed after the worker or ctx
// was interrupted is wrapped in a *fault.InterruptedError.
func (w *Worker) Do(ctx context.Context, job func(context.Context) error) error {
	res := w.Submit(ctx, job)
	if res.Err != nil && res.Interrupted && !errors.Is(res.Err, ErrStopped) {
		return &fault.InterruptedError{Op: w.name, Cause: res.Err}
	}
	return res.Err
}

func (w *Worker) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.jobs:
			req.result <- w.execute(req)
		}
	}
}

func (w *Worker) execute(req *request) Result {
	if w.ctx.Err() != nil {
		return Result{Err: ErrStopped}
	}

	jobCtx, cancel := context.WithCancel(req.ctx)
	defer cancel()
	stop := context.AfterFunc(w.ctx, cancel)
	defer stop()

	start := time.Now()
	err := runJob(jobCtx, req.job)
	res := Result{
		Err:         err,
		Interrupted: jobCtx.Err() != nil,
		Duration:    time.Since(start),
	}
	if err != nil {
		logging.Debug(subsystem, "job on %s failed after %v (interrupted=%t): %v", w.name, res.Duration, res.Interrupted, err)
	}
	return res
}

func runJob(ctx context.Context, job func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return job(ctx)
}
