package config

import "time"

// Default values for configuration fields.
const (
	// Workspace defaults
	DefaultMandateFile = ".usdc-mandate.json"
	DefaultLedgerFile  = ".usdc-mandate-ledger.json"

	// Output defaults
	DefaultOutputFormat = "text"

	// Usage defaults
	DefaultAlertThreshold = 0.8

	// History defaults
	DefaultHistoryPath          = "data/mandate-history.db"
	DefaultHistoryBusyTimeout   = 5 * time.Second
	DefaultHistoryRetentionDays = 90

	// Metrics defaults
	DefaultMetricsTextfilePath = "data/mandate_check.prom"
	DefaultMetricsNamespace    = "mandate"

	// Watch defaults
	DefaultWatchDebounce = 200 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel  = "warn"
	DefaultLoggingFormat = "text"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Workspace defaults
	if cfg.Workspace.MandateFile == "" {
		cfg.Workspace.MandateFile = DefaultMandateFile
	}
	if cfg.Workspace.LedgerFile == "" {
		cfg.Workspace.LedgerFile = DefaultLedgerFile
	}

	// Output defaults
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}

	// Usage defaults
	if cfg.Usage.AlertThreshold == 0 {
		cfg.Usage.AlertThreshold = DefaultAlertThreshold
	}

	// History defaults
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = DefaultHistoryBusyTimeout
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = DefaultHistoryRetentionDays
	}

	// Metrics defaults
	if cfg.Metrics.TextfilePath == "" {
		cfg.Metrics.TextfilePath = DefaultMetricsTextfilePath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
}

// Default returns a configuration holding only default values.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
