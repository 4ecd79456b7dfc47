package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with default values.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	cfg := Config{}
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithWorkspace sets the workspace path.
func (b *ConfigBuilder) WithWorkspace(path string) *ConfigBuilder {
	b.cfg.Workspace.Path = path
	return b
}

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format string) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithHistory enables history at path.
func (b *ConfigBuilder) WithHistory(path string) *ConfigBuilder {
	b.cfg.History.Enabled = true
	b.cfg.History.Path = path
	return b
}

// WithMetrics enables the textfile export at path.
func (b *ConfigBuilder) WithMetrics(path string) *ConfigBuilder {
	b.cfg.Metrics.Enabled = true
	b.cfg.Metrics.TextfilePath = path
	return b
}

// WithSchedule sets the watch cron schedule.
func (b *ConfigBuilder) WithSchedule(schedule string) *ConfigBuilder {
	b.cfg.Watch.Schedule = schedule
	return b
}

// WithDebounce sets the watch debounce.
func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}

// WithLogging sets the logging level and format.
func (b *ConfigBuilder) WithLogging(level, format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	b.cfg.Telemetry.Logging.Format = format
	return b
}
