package config

import (
	"fmt"
	"time"
)

// VgateConfig is the top-level configuration structure for vgate.
type VgateConfig struct {
	// RuntimeVersion overrides the detected runtime version when set.
	RuntimeVersion string `yaml:"runtime_version,omitempty"`
	// Manifest is the path to the case manifest file or directory.
	Manifest string `yaml:"manifest,omitempty"`
	// Parallel is the number of cases executed concurrently.
	Parallel int `yaml:"parallel,omitempty"`
	// Timeout bounds a whole run.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// FailFast stops execution on first failure.
	FailFast bool `yaml:"fail_fast,omitempty"`
	// ReportPath is a directory that receives a detailed JSON report.
	ReportPath string `yaml:"report_path,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
	// Output is one of console, quiet, json.
	Output string `yaml:"output,omitempty"`
}

const (
	DefaultManifest = "vgate.yaml"
	DefaultParallel = 1
	DefaultTimeout  = 10 * time.Minute
	DefaultLogLevel = "warn"
	DefaultOutput   = "console"

	MaxParallel = 10
)

// GetDefaultConfig returns the built-in configuration layer.
func GetDefaultConfig() VgateConfig {
	return VgateConfig{
		Manifest: DefaultManifest,
		Parallel: DefaultParallel,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
	}
}

// Validate checks value ranges after all layers and flags were applied.
func (c VgateConfig) Validate() error {
	if c.Parallel < 1 || c.Parallel > MaxParallel {
		return fmt.Errorf("parallel workers must be between 1 and %d, got %d", MaxParallel, c.Parallel)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	switch c.Output {
	case "console", "quiet", "json":
	default:
		return fmt.Errorf("invalid output '%s', must be one of: console, quiet, json", c.Output)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level '%s', must be one of: debug, info, warn, error", c.LogLevel)
	}
	return nil
}
