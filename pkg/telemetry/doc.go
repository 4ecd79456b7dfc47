// Package telemetry groups the observability packages of mandate-check.
//
// # Components
//
//   - logging: slog wrapper with wallet address redaction and run context
//   - metrics: Prometheus collector written to a node_exporter textfile or
//     served over HTTP in watch mode
//   - health: liveness and readiness endpoints for watch mode
//
// Logs always go to stderr so stdout carries only the check report.
package telemetry
