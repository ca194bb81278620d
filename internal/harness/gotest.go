package harness

import (
	"context"
	"testing"

	"vgate/internal/fault"
	"vgate/internal/versiongate"
	"vgate/internal/worker"
)

// RunT runs every registered case as a subtest of t, gated against the
// process runtime version.
func RunT(t *testing.T, reg *Registry) {
	t.Helper()
	RunTVersion(t, reg, versiongate.RuntimeVersion())
}

// RunTVersion is RunT with an explicit runtime version. A Skip decision calls
// t.Skip; a body error fails the subtest with the unwrapped cause.
func RunTVersion(t *testing.T, reg *Registry, version string) {
	t.Helper()

	w := worker.New("analysis")
	t.Cleanup(func() { w.Stop() })

	for _, tc := range reg.Cases() {
		t.Run(tc.Name, func(t *testing.T) {
			versiongate.RequireVersion(t, tc.Constraint, version)
			if tc.Body == nil {
				t.Fatal("case has no body")
			}

			ctx := context.Background()
			if tc.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tc.Timeout)
				defer cancel()
			}

			err := fault.RunGuarded(func() error { return w.Do(ctx, tc.Body) })
			w = renew(w)
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}
