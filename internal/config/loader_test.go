package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content VgateConfig) string {
	t.Helper()
	err := os.MkdirAll(dir, 0755)
	require.NoError(t, err)
	tempFilePath := filepath.Join(dir, filename)
	data, err := yaml.Marshal(&content)
	require.NoError(t, err)
	err = os.WriteFile(tempFilePath, data, 0644)
	require.NoError(t, err)
	return tempFilePath
}

// mockConfigPaths points both layers into tempDir and restores them afterwards.
func mockConfigPaths(t *testing.T, tempDir string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "home", userConfigDir, configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "project", projectConfigDir, configFileName), nil
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	mockConfigPaths(t, t.TempDir())

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loadedConfig)
	assert.NoError(t, loadedConfig.Validate())
}

func TestLoadConfig_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, "home", userConfigDir), configFileName, VgateConfig{
		RuntimeVersion: "go1.22.5",
		Parallel:       4,
		LogLevel:       "debug",
	})

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "go1.22.5", loadedConfig.RuntimeVersion)
	assert.Equal(t, 4, loadedConfig.Parallel)
	assert.Equal(t, "debug", loadedConfig.LogLevel)
	// Untouched fields keep their defaults
	assert.Equal(t, DefaultManifest, loadedConfig.Manifest)
	assert.Equal(t, DefaultTimeout, loadedConfig.Timeout)
}

func TestLoadConfig_ProjectTakesPrecedence(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, "home", userConfigDir), configFileName, VgateConfig{
		RuntimeVersion: "go1.22.5",
		Output:         "quiet",
	})
	createTempConfigFile(t, filepath.Join(tempDir, "project", projectConfigDir), configFileName, VgateConfig{
		RuntimeVersion: "go1.23.1",
		Manifest:       "ci/vgate.yaml",
		FailFast:       true,
	})

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "go1.23.1", loadedConfig.RuntimeVersion)
	assert.Equal(t, "ci/vgate.yaml", loadedConfig.Manifest)
	assert.True(t, loadedConfig.FailFast)
	assert.Equal(t, "quiet", loadedConfig.Output)
}

func TestLoadConfig_DurationField(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	projectDir := filepath.Join(tempDir, "project", projectConfigDir)
	require.NoError(t, os.MkdirAll(projectDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, configFileName), []byte("timeout: 90s\n"), 0644))

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, loadedConfig.Timeout)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	projectDir := filepath.Join(tempDir, "project", projectConfigDir)
	require.NoError(t, os.MkdirAll(projectDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, configFileName), []byte("parallel: [not, a, number\n"), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error loading project config")
}

func TestVgateConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *VgateConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *VgateConfig) {}},
		{name: "zero parallel", mutate: func(c *VgateConfig) { c.Parallel = 0 }, wantErr: "parallel workers"},
		{name: "too many workers", mutate: func(c *VgateConfig) { c.Parallel = 11 }, wantErr: "parallel workers"},
		{name: "no timeout", mutate: func(c *VgateConfig) { c.Timeout = 0 }, wantErr: "timeout"},
		{name: "bad output", mutate: func(c *VgateConfig) { c.Output = "xml" }, wantErr: "invalid output"},
		{name: "bad log level", mutate: func(c *VgateConfig) { c.LogLevel = "trace" }, wantErr: "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := GetDefaultConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetUserConfigDir(t *testing.T) {
	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()

	osUserHomeDir = func() (string, error) { return "/home/dev", nil }

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/dev", ".config", "vgate"), dir)
}

func TestGetUserConfigPath(t *testing.T) {
	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()

	osUserHomeDir = func() (string, error) { return "/home/dev", nil }

	path, err := getUserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/dev", ".config", "vgate", "config.yaml"), path)
}
