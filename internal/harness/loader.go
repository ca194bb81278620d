package harness

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"vgate/pkg/logging"
)

const loaderSubsystem = "Loader"

// manifestLoader implements the CaseLoader interface
type manifestLoader struct {
	debug bool
}

// NewCaseLoader creates a new manifest loader
func NewCaseLoader(debug bool) CaseLoader {
	return &manifestLoader{debug: debug}
}

// LoadManifest loads a manifest from a file, or merges every *.yaml and
// *.yml file of a directory in lexical order.
func (l *manifestLoader) LoadManifest(manifestPath string) (*Manifest, error) {
	info, err := os.Stat(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access manifest path %s: %w", manifestPath, err)
	}

	files := []string{manifestPath}
	if info.IsDir() {
		files, err = manifestFiles(manifestPath)
		if err != nil {
			return nil, err
		}
	}

	merged := &Manifest{}
	for _, file := range files {
		m, err := l.loadFile(file)
		if err != nil {
			return nil, err
		}
		merged.Cases = append(merged.Cases, m.Cases...)
	}

	if err := validateManifest(merged); err != nil {
		return nil, err
	}

	if l.debug {
		logging.Debug(loaderSubsystem, "Loaded %d cases from %d manifest file(s) under %s", len(merged.Cases), len(files), manifestPath)
	}
	return merged, nil
}

func (l *manifestLoader) loadFile(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", file, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", file, err)
	}
	return &m, nil
}

func manifestFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func validateManifest(m *Manifest) error {
	seen := make(map[string]bool, len(m.Cases))
	for i, mc := range m.Cases {
		if mc.Name == "" {
			return fmt.Errorf("manifest case #%d has no name", i+1)
		}
		if seen[mc.Name] {
			return fmt.Errorf("duplicate manifest case %q", mc.Name)
		}
		seen[mc.Name] = true
		if mc.Timeout < 0 {
			return fmt.Errorf("manifest case %q has a negative timeout", mc.Name)
		}
	}
	return nil
}

// FilterCases filters cases based on the configuration
func (l *manifestLoader) FilterCases(cases []TestCase, config TestConfiguration) []TestCase {
	var filtered []TestCase
	for _, tc := range cases {
		if config.Name != "" && !matchesName(config.Name, tc.Name) {
			continue
		}
		if len(config.Tags) > 0 && !hasAnyTag(tc.Tags, config.Tags) {
			continue
		}
		filtered = append(filtered, tc)
	}
	return filtered
}

func matchesName(pattern, name string) bool {
	if pattern == name {
		return true
	}
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}

func hasAnyTag(tags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range tags {
			if t == w {
				return true
			}
		}
	}
	return false
}
