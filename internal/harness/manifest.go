package harness

import (
	"time"

	"vgate/internal/versiongate"
)

// Manifest is the YAML document describing cases.
type Manifest struct {
	Cases []ManifestCase `yaml:"cases"`
}

// ManifestCase is one manifest entry. Entries with a Command are runnable on
// their own; entries without one attach attributes to registered Go cases.
type ManifestCase struct {
	// Name is the unique identifier for the case
	Name string `yaml:"name"`
	// Description provides human-readable case description
	Description string `yaml:"description,omitempty"`
	// Tags for filtering
	Tags []string `yaml:"tags,omitempty"`
	// Constraint is inlined, so matches and does_not_match sit next to name
	Constraint versiongate.Constraint `yaml:",inline"`
	// Timeout for this specific case
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// Command is the argv to execute, e.g. ["go", "test", "./..."]
	Command []string `yaml:"command,omitempty"`
	// Dir is the working directory for Command
	Dir string `yaml:"dir,omitempty"`
	// Env adds KEY=VALUE entries to the command environment
	Env []string `yaml:"env,omitempty"`
}

// GateConstraint returns the entry's constraint, or nil when neither prefix
// is set.
func (mc ManifestCase) GateConstraint() *versiongate.Constraint {
	if mc.Constraint.Matches == "" && mc.Constraint.DoesNotMatch == "" {
		return nil
	}
	c := mc.Constraint
	return &c
}
