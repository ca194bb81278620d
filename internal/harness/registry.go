package harness

import (
	"fmt"
	"sync"
)

// Registry holds Go-defined cases in registration order.
type Registry struct {
	mu    sync.RWMutex
	cases []TestCase
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a case. Names must be non-empty and unique.
func (r *Registry) Register(tc TestCase) error {
	if tc.Name == "" {
		return fmt.Errorf("case name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[tc.Name]; exists {
		return fmt.Errorf("case %q is already registered", tc.Name)
	}
	r.index[tc.Name] = len(r.cases)
	r.cases = append(r.cases, tc)
	return nil
}

// MustRegister is Register for package-level init blocks. It panics on error.
func (r *Registry) MustRegister(tc TestCase) {
	if err := r.Register(tc); err != nil {
		panic(err)
	}
}

// Lookup returns the case registered under name.
func (r *Registry) Lookup(name string) (TestCase, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return TestCase{}, false
	}
	return r.cases[i], true
}

// Cases returns a copy of the registered cases in registration order.
func (r *Registry) Cases() []TestCase {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TestCase, len(r.cases))
	copy(out, r.cases)
	return out
}

// ApplyManifest attaches manifest attributes to registered cases by name.
// Manifest entries with a command describe standalone cases and are ignored.
// A constraint in the manifest replaces the registered one; tags are added;
// description and timeout fill in only when set. An unknown name leaves the
// registry unchanged.
func (r *Registry) ApplyManifest(m *Manifest) error {
	if m == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := make([]TestCase, len(r.cases))
	copy(updated, r.cases)

	for _, mc := range m.Cases {
		if len(mc.Command) > 0 {
			continue
		}
		i, ok := r.index[mc.Name]
		if !ok {
			return fmt.Errorf("manifest references unknown case %q", mc.Name)
		}

		tc := updated[i]
		if c := mc.GateConstraint(); c != nil {
			tc.Constraint = c
		}
		if mc.Description != "" {
			tc.Description = mc.Description
		}
		if mc.Timeout > 0 {
			tc.Timeout = mc.Timeout
		}
		tc.Tags = mergeTags(tc.Tags, mc.Tags)
		updated[i] = tc
	}

	r.cases = updated
	return nil
}

func mergeTags(existing, extra []string) []string {
	if len(extra) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing)+len(extra))
	out := make([]string, 0, len(existing)+len(extra))
	for _, tag := range append(append([]string{}, existing...), extra...) {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
