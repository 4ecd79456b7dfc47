// Package config provides configuration management for mandate-check.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. Every setting has a
// default, so running without a configuration file is the normal case.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("mandate-check.yaml")
//
//  2. From an optional YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("")
//
// With an empty path, mandate-check.yaml in the working directory is used
// when present.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention MANDATE_SECTION_FIELD.
// For example:
//
//   - MANDATE_WORKSPACE_PATH overrides workspace.path
//   - MANDATE_HISTORY_ENABLED overrides history.enabled
//   - MANDATE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// A .env file in the working directory is loaded first; variables already
// present in the environment are not replaced by it.
//
// OPENCLAW_WORKSPACE is not a configuration override. It is consulted by
// workspace resolution after the command-line argument.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	workspace:
//	  path: "/srv/agent/workspace"
//
//	history:
//	  enabled: true
//	  path: "/var/lib/mandate-check/history.db"
//	  retention_days: 30
//
//	metrics:
//	  enabled: true
//	  textfile_path: "/var/lib/node_exporter/mandate_check.prom"
//
//	watch:
//	  schedule: "*/15 * * * *"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
