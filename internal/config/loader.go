package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"vgate/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/vgate"
	projectConfigDir = ".vgate"
	configFileName   = "config.yaml"
)

// LoadConfig loads the vgate configuration by layering default, user, and project settings.
func LoadConfig() (VgateConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. Determine user-specific configuration path
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else {
		config, err = overlayFromFile(config, userConfigPath)
		if err != nil {
			return VgateConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
	}

	// 3. Determine project-specific configuration path
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else {
		config, err = overlayFromFile(config, projectConfigPath)
		if err != nil {
			return VgateConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
	}

	return config, nil
}

func overlayFromFile(base VgateConfig, path string) (VgateConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return VgateConfig{}, err
	}
	logging.Debug("Config", "Loaded configuration layer %s", path)
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	dir, err := GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a VgateConfig from a YAML file.
func loadConfigFromFile(filePath string) (VgateConfig, error) {
	var config VgateConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return VgateConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return VgateConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
// Non-zero overlay fields win.
func mergeConfigs(base, overlay VgateConfig) VgateConfig {
	merged := base

	if overlay.RuntimeVersion != "" {
		merged.RuntimeVersion = overlay.RuntimeVersion
	}
	if overlay.Manifest != "" {
		merged.Manifest = overlay.Manifest
	}
	if overlay.Parallel != 0 {
		merged.Parallel = overlay.Parallel
	}
	if overlay.Timeout != 0 {
		merged.Timeout = overlay.Timeout
	}
	if overlay.FailFast {
		merged.FailFast = true
	}
	if overlay.ReportPath != "" {
		merged.ReportPath = overlay.ReportPath
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	if overlay.Output != "" {
		merged.Output = overlay.Output
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
