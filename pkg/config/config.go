package config

import "time"

// Config is the root configuration structure for mandate-check.
// It contains the workspace layout, output preferences, and the settings of
// the optional history, metrics, watch and telemetry subsystems.
type Config struct {
	// Workspace controls where the mandate documents are looked up.
	Workspace WorkspaceConfig `yaml:"workspace"`

	// Output controls how check results are rendered.
	Output OutputConfig `yaml:"output"`

	// Usage contains settings for the period usage summary.
	Usage UsageConfig `yaml:"usage"`

	// History contains configuration for the run history database.
	History HistoryConfig `yaml:"history"`

	// Metrics contains configuration for the Prometheus textfile export.
	Metrics MetricsConfig `yaml:"metrics"`

	// Watch contains configuration for continuous checking.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorkspaceConfig describes the workspace directory and document names.
type WorkspaceConfig struct {
	// Path is the workspace directory. When empty the command-line argument,
	// OPENCLAW_WORKSPACE, and ~/.openclaw/workspace are tried in that order.
	// Default: ""
	Path string `yaml:"path"`

	// MandateFile is the mandate document name inside the workspace.
	// Default: ".usdc-mandate.json"
	MandateFile string `yaml:"mandate_file"`

	// LedgerFile is the ledger document name inside the workspace.
	// Default: ".usdc-mandate-ledger.json"
	LedgerFile string `yaml:"ledger_file"`
}

// OutputConfig contains output settings.
type OutputConfig struct {
	// Format selects the report rendering.
	// Options: "text", "json"
	// Default: "text"
	Format string `yaml:"format"`
}

// UsageConfig contains settings for the usage summary.
type UsageConfig struct {
	// AlertThreshold is the spent ratio (0.0-1.0) at which the usage summary
	// flags an alert. A negative value disables alerts.
	// Default: 0.8
	AlertThreshold float64 `yaml:"alert_threshold"`
}

// HistoryConfig contains run history settings.
type HistoryConfig struct {
	// Enabled turns on recording of every check run.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	// Default: "data/mandate-history.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long a write waits for a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// RetentionDays is how long run records are kept. A negative value
	// keeps records forever.
	// Default: 90
	RetentionDays int `yaml:"retention_days"`
}

// MetricsConfig contains Prometheus textfile settings.
type MetricsConfig struct {
	// Enabled turns on writing metrics after every run.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// TextfilePath is the .prom file read by the node_exporter textfile
	// collector.
	// Default: "data/mandate_check.prom"
	TextfilePath string `yaml:"textfile_path"`

	// Namespace is the metric name prefix.
	// Default: "mandate"
	Namespace string `yaml:"namespace"`
}

// WatchConfig contains watch mode settings.
type WatchConfig struct {
	// Debounce is the quiet period after a file event before a check runs.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional standard five-field cron expression on which
	// checks also run, e.g. "*/15 * * * *".
	// Default: ""
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// ShowAddresses disables redaction of 0x recipient addresses in logs.
	// Default: false
	ShowAddresses bool `yaml:"show_addresses"`
}
