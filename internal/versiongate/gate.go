package versiongate

// TestingT abstracts *testing.T and *testing.B. It has only the methods
// needed to mark a test as skipped.
type TestingT interface {
	Helper()
	Skipf(format string, args ...any)
}

// Require skips t unless c admits the process runtime version.
func Require(t TestingT, c *Constraint) {
	t.Helper()
	RequireVersion(t, c, RuntimeVersion())
}

// RequireVersion skips t unless c admits version.
func RequireVersion(t TestingT, c *Constraint, version string) {
	t.Helper()
	if Decide(c, version) == Skip {
		t.Skipf("runtime version %s does not satisfy %s", version, c)
	}
}
