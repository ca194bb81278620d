package harness

import (
	"context"
	"os"
	"os/exec"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgate/internal/versiongate"
)

func TestRunTVersion(t *testing.T) {
	var ran atomic.Int32
	reg := NewRegistry()
	reg.MustRegister(TestCase{
		Name: "ungated",
		Body: func(ctx context.Context) error { ran.Add(1); return nil },
	})
	reg.MustRegister(TestCase{
		Name:       "on-2.11",
		Constraint: &versiongate.Constraint{Matches: "2.11"},
		Body:       func(ctx context.Context) error { ran.Add(1); return nil },
	})
	reg.MustRegister(TestCase{
		Name:       "excluded-on-2.11",
		Constraint: &versiongate.Constraint{DoesNotMatch: "2.11"},
		Body: func(ctx context.Context) error {
			t.Error("body of a skipped case must not run")
			return nil
		},
	})

	RunTVersion(t, reg, "2.11.8")

	assert.Equal(t, int32(2), ran.Load())
}

func TestRunT_CurrentRuntime(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(TestCase{
		Name:       "current",
		Constraint: &versiongate.Constraint{Matches: versiongate.RuntimeVersion()},
		Body:       noop,
	})

	RunT(t, reg)
}

const runTFailureEnv = "VGATE_RUNT_FAILURE"

// TestRunT_FailureReportsCause runs a failing registry in a child test process,
// since a failing subtest would fail this test too.
func TestRunT_FailureReportsCause(t *testing.T) {
	if os.Getenv(runTFailureEnv) == "1" {
		reg := NewRegistry()
		reg.MustRegister(TestCase{
			Name:    "interrupted",
			Timeout: 10 * time.Millisecond,
			Body: func(ctx context.Context) error {
				<-ctx.Done()
				return &assertionError{msg: "expected 2 occurrences, got 1"}
			},
		})
		RunT(t, reg)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestRunT_FailureReportsCause$", "-test.v")
	cmd.Env = append(os.Environ(), runTFailureEnv+"=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "child output:\n%s", out)
	assert.Contains(t, string(out), "--- FAIL: TestRunT_FailureReportsCause/interrupted")
	assert.Contains(t, string(out), "expected 2 occurrences, got 1")
	assert.NotContains(t, string(out), "interrupted on worker")
}
