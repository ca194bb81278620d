// Package harness runs version-gated test cases.
//
// Every case goes through the same control flow:
//
//  1. The case's versiongate.Constraint is checked against the runtime
//     version. A Skip decision marks the case SKIPPED and its body is never
//     invoked. Skipped cases are never counted as failures.
//  2. The body runs on a dedicated worker goroutine, guarded by
//     fault.RunGuarded. A failure that came back wrapped because the worker
//     was interrupted is reported with its original cause.
//
// # Components
//
// ### Registry (registry.go)
// - Holds Go-defined cases in registration order
// - Attaches constraints at registration time; no reflection is involved
// - Accepts constraint overrides from a manifest
//
// ### Manifest Loader (loader.go)
// - Parses YAML manifests from a file or a directory of files
// - Filters cases by name and tag
//
// ### Test Runner (test_runner.go)
// - Sequential or parallel execution, one worker per slot
// - Fail-fast and timeout handling
//
// ### Reporters (test_reporter.go)
// - console, quiet and json output for terminals and CI
//
// ## Manifest Structure
//
//	cases:
//	  - name: generics-rewrite
//	    description: "Rewrites type parameter lists"
//	    tags: [rewrite]
//	    matches: go1.2
//	    does_not_match: go1.20
//	    timeout: 2m
//	    command: ["go", "test", "./rewrite/..."]
//
// ## Usage from go test
//
//	var cases = harness.NewRegistry()
//
//	func init() {
//	    cases.MustRegister(harness.TestCase{
//	        Name:       "extract-method",
//	        Constraint: &versiongate.Constraint{Matches: "go1.2"},
//	        Body:       extractMethod,
//	    })
//	}
//
//	func TestRefactorings(t *testing.T) { harness.RunT(t, cases) }
package harness
