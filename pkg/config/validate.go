package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "history.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// metricNamespacePattern is the Prometheus metric name character set.
var metricNamespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateWorkspace(&cfg.Workspace)...)
	errs = append(errs, validateOutput(&cfg.Output)...)
	errs = append(errs, validateUsage(&cfg.Usage)...)
	errs = append(errs, validateHistory(&cfg.History)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateWorkspace(cfg *WorkspaceConfig) []FieldError {
	var errs []FieldError

	files := []struct{ field, name string }{
		{"workspace.mandate_file", cfg.MandateFile},
		{"workspace.ledger_file", cfg.LedgerFile},
	}
	for _, f := range files {
		if strings.ContainsAny(f.name, `/\`) {
			errs = append(errs, FieldError{
				Field:   f.field,
				Message: fmt.Sprintf("file name %q must not contain a path separator", f.name),
			})
		}
	}

	if cfg.MandateFile != "" && cfg.MandateFile == cfg.LedgerFile {
		errs = append(errs, FieldError{
			Field:   "workspace.ledger_file",
			Message: "ledger file must differ from mandate file",
		})
	}

	return errs
}

func validateOutput(cfg *OutputConfig) []FieldError {
	var errs []FieldError

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Format] {
		errs = append(errs, FieldError{
			Field:   "output.format",
			Message: fmt.Sprintf("invalid output format %q: must be 'text' or 'json'", cfg.Format),
		})
	}

	return errs
}

func validateUsage(cfg *UsageConfig) []FieldError {
	var errs []FieldError

	if cfg.AlertThreshold > 1.0 {
		errs = append(errs, FieldError{
			Field:   "usage.alert_threshold",
			Message: "alert threshold must not exceed 1.0",
		})
	}

	return errs
}

func validateHistory(cfg *HistoryConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "history.path",
			Message: "history path is required when history is enabled",
		})
	}
	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "history.busy_timeout",
			Message: "busy timeout must be non-negative",
		})
	}

	return errs
}

func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && cfg.TextfilePath == "" {
		errs = append(errs, FieldError{
			Field:   "metrics.textfile_path",
			Message: "textfile path is required when metrics are enabled",
		})
	}
	if cfg.Enabled && !strings.HasSuffix(cfg.TextfilePath, ".prom") {
		errs = append(errs, FieldError{
			Field:   "metrics.textfile_path",
			Message: "textfile path must end in .prom to be read by the textfile collector",
		})
	}
	if !metricNamespacePattern.MatchString(cfg.Namespace) {
		errs = append(errs, FieldError{
			Field:   "metrics.namespace",
			Message: fmt.Sprintf("invalid metric namespace %q", cfg.Namespace),
		})
	}

	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "watch.schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	return errs
}
