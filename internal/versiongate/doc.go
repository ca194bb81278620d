// Package versiongate decides whether a test case should run on the current
// runtime.
//
// A test case may carry a Constraint with two optional prefixes. Matches is
// the prefix the runtime version must start with, and DoesNotMatch is a
// prefix that excludes the runtime outright. Versions are compared as opaque
// strings; they are never parsed into major or minor components.
//
// # Decision Rules
//
//   - no constraint: Run
//   - DoesNotMatch is non-empty and prefixes the version: Skip
//   - Matches prefixes the version (the empty prefix always does): Run
//   - otherwise: Skip
//
// # Usage
//
//	func TestGenericsRewrite(t *testing.T) {
//	    versiongate.Require(t, &versiongate.Constraint{Matches: "go1.2", DoesNotMatch: "go1.20"})
//	    // ...
//	}
//
// A skipped decision is reported through t.Skipf, so the test counts as
// neither passed nor failed.
package versiongate
