package config

import (
	"fmt"
	"sync"
)

var (
	// activeConfig is the configuration of the running command.
	activeConfig *Config

	// activeMu protects access to activeConfig.
	activeMu sync.RWMutex
)

// GetConfig returns the active configuration, or nil if none has been set.
func GetConfig() *Config {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeConfig
}

// SetConfig replaces the active configuration.
func SetConfig(cfg *Config) {
	activeMu.Lock()
	defer activeMu.Unlock()
	activeConfig = cfg
}

// ReloadConfig loads path with environment overrides and makes it the
// active configuration. On failure the current configuration is kept.
func ReloadConfig(path string) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}

	SetConfig(cfg)
	return cfg, nil
}
