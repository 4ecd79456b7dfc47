package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory when no path is given.
const DefaultConfigFile = "mandate-check.yaml"

// DefaultEnvFile is the dotenv file loaded before environment overrides.
const DefaultEnvFile = ".env"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention MANDATE_SECTION_FIELD (e.g., MANDATE_OUTPUT_FORMAT).
// Environment variables always take precedence over file-based configuration.
//
// An empty path loads DefaultConfigFile when it exists and falls back to the
// defaults otherwise. A non-empty path must exist.
//
// The loading sequence is:
// 1. Load .env into the process environment (existing variables win)
// 2. Load YAML from file, or start from defaults
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	if err := LoadEnvFile(DefaultEnvFile); err != nil {
		return nil, err
	}

	cfg, err := loadOptional(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs from a dotenv file into the process
// environment. Variables that are already set are not changed. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load environment file %q: %w", path, err)
	}
	return nil
}

func loadOptional(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return LoadConfig(DefaultConfigFile)
	}
	return Default(), nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format MANDATE_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Workspace overrides
	if val := os.Getenv("MANDATE_WORKSPACE_PATH"); val != "" {
		cfg.Workspace.Path = val
	}
	if val := os.Getenv("MANDATE_WORKSPACE_MANDATE_FILE"); val != "" {
		cfg.Workspace.MandateFile = val
	}
	if val := os.Getenv("MANDATE_WORKSPACE_LEDGER_FILE"); val != "" {
		cfg.Workspace.LedgerFile = val
	}

	// Output overrides
	if val := os.Getenv("MANDATE_OUTPUT_FORMAT"); val != "" {
		cfg.Output.Format = val
	}

	// Usage overrides
	if val := os.Getenv("MANDATE_USAGE_ALERT_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Usage.AlertThreshold = f
		}
	}

	// History overrides
	if val := os.Getenv("MANDATE_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("MANDATE_HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}
	if val := os.Getenv("MANDATE_HISTORY_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.History.BusyTimeout = d
		}
	}
	if val := os.Getenv("MANDATE_HISTORY_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.RetentionDays = i
		}
	}

	// Metrics overrides
	if val := os.Getenv("MANDATE_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("MANDATE_METRICS_TEXTFILE_PATH"); val != "" {
		cfg.Metrics.TextfilePath = val
	}
	if val := os.Getenv("MANDATE_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}

	// Watch overrides
	if val := os.Getenv("MANDATE_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}
	if val := os.Getenv("MANDATE_WATCH_SCHEDULE"); val != "" {
		cfg.Watch.Schedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("MANDATE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("MANDATE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("MANDATE_TELEMETRY_LOGGING_SHOW_ADDRESSES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.ShowAddresses = b
		}
	}
}
