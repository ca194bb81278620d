package versiongate

import (
	"fmt"
	"strings"
)

// Outcome is the result of gating a single test invocation.
type Outcome int

const (
	// Run means the test body should be executed.
	Run Outcome = iota
	// Skip means the preconditions are not met and the test is not evaluated.
	Skip
	// Fail means the test body was executed and failed. Decide never returns
	// it; the harness reports failed and errored cases with it.
	Fail
)

// String makes Outcome satisfy the fmt.Stringer interface.
func (o Outcome) String() string {
	switch o {
	case Run:
		return "RUN"
	case Skip:
		return "SKIP"
	case Fail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// Constraint is the version attribute record attached to a test case.
type Constraint struct {
	// Matches is the required runtime version prefix. Empty matches any version.
	Matches string `yaml:"matches,omitempty" json:"matches,omitempty"`
	// DoesNotMatch is an excluded runtime version prefix. Empty excludes nothing.
	DoesNotMatch string `yaml:"does_not_match,omitempty" json:"does_not_match,omitempty"`
}

// String renders the constraint in the same form ParseConstraint accepts.
func (c *Constraint) String() string {
	if c == nil {
		return "any"
	}
	var parts []string
	if c.Matches != "" {
		parts = append(parts, "matches="+c.Matches)
	}
	if c.DoesNotMatch != "" {
		parts = append(parts, "does_not_match="+c.DoesNotMatch)
	}
	if len(parts) == 0 {
		return "any"
	}
	return strings.Join(parts, ",")
}

// Decide gates a test against runtimeVersion. DoesNotMatch takes precedence
// over Matches.
func Decide(c *Constraint, runtimeVersion string) Outcome {
	if c == nil {
		return Run
	}
	if c.DoesNotMatch != "" && strings.HasPrefix(runtimeVersion, c.DoesNotMatch) {
		return Skip
	}
	if strings.HasPrefix(runtimeVersion, c.Matches) {
		return Run
	}
	return Skip
}

// ParseConstraint parses the compact "matches=X,does_not_match=Y" form.
// Both keys are optional and an empty string yields a nil constraint.
func ParseConstraint(s string) (*Constraint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	c := &Constraint{}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("invalid constraint field %q: expected key=value", field)
		}
		switch strings.TrimSpace(key) {
		case "matches":
			c.Matches = strings.TrimSpace(value)
		case "does_not_match", "doesNotMatch":
			c.DoesNotMatch = strings.TrimSpace(value)
		default:
			return nil, fmt.Errorf("unknown constraint key %q", key)
		}
	}
	return c, nil
}
