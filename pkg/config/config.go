// Package config provides configuration management for the lfsrkey CLI tool
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	UI       UIConfig        `json:"ui"`
	Storage  StorageConfig   `json:"storage"`
}

// DefaultSettings contains default values for common operations
type DefaultSettings struct {
	MinSeedBits int  `json:"min_seed_bits"` // Default: 7
	MaxWidth    int  `json:"max_width"`     // Default: 30 (search/simulation cap)
	AutoTaps    bool `json:"auto_taps"`     // Default: true (search for primitive taps)
	ShowTrace   bool `json:"show_trace"`    // Default: false (per-cycle table)
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor     bool `json:"use_color"`      // Enable colored output
	ChunkBits    int  `json:"chunk_bits"`     // Keystream display row width
	WarnBelowLen int  `json:"warn_below_len"` // Warn when keystream shorter than this
}

// StorageConfig contains storage-related settings
type StorageConfig struct {
	ProfilePath     string `json:"profile_path"`     // Keystream profile directory
	FilePermissions string `json:"file_permissions"` // Default file permissions
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() (*ConfigManager, error) {
	cm := &ConfigManager{}

	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	cm.configPath = configPath

	// Load or create default config
	if err := cm.LoadConfig(); err != nil {
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return cm, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			MinSeedBits: 7,
			MaxWidth:    30,
			AutoTaps:    true,
			ShowTrace:   false,
		},
		UI: UIConfig{
			UseColor:     true,
			ChunkBits:    50,
			WarnBelowLen: 100,
		},
		Storage: StorageConfig{
			ProfilePath:     "~/.lfsrkey/profiles",
			FilePermissions: "0600",
		},
	}
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// ProfileDir resolves the keystream profile directory, expanding a
// leading ~ to the user home directory.
func (cm *ConfigManager) ProfileDir() (string, error) {
	path := cm.config.Storage.ProfilePath
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[1:])
	}
	return path, nil
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	// Check for custom config path
	if customPath := os.Getenv("LFSRKEY_CONFIG"); customPath != "" {
		return customPath, nil
	}

	// Use XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "lfsrkey", "config.json"), nil
	}

	// Default to ~/.config/lfsrkey/config.json
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "lfsrkey", "config.json"), nil
}
