// Package config provides configuration management for vgate.
//
// This package implements a layered configuration system that allows users to
// customize vgate's behavior through YAML files. Configuration is loaded from
// multiple sources and merged in a specific order, with later sources overriding
// earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (embedded in binary)
//     - Provides sensible defaults for all settings
//
//  2. User Configuration (~/.config/vgate/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.vgate/config.yaml)
//     - Project-specific settings in the current directory
//     - Allows teams to share the manifest location and CI settings via
//       version control
//
// # Configuration Structure
//
//	runtime_version: ""        # empty means runtime.Version()
//	manifest: vgate.yaml
//	parallel: 1
//	timeout: 10m
//	fail_fast: false
//	report_path: ""
//	log_level: info
//	output: console
//
// Command line flags override whatever the layers produce.
package config
