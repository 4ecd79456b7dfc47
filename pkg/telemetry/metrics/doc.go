// Package metrics exports mandate check results as Prometheus metrics.
//
// # Overview
//
// mandate-check is usually run from cron or a CI job, so there is nothing
// long-lived to scrape. After each run the collector is written to a file
// for the node_exporter textfile collector. Watch mode can additionally
// serve the same registry over HTTP.
//
// # Metrics
//
// All metrics use the configured namespace (default "mandate") and the
// "check" subsystem:
//
//   - runs_total{outcome}: passed, failed or aborted runs
//   - run_duration_seconds: validation time
//   - last_run_timestamp_seconds, last_run_success
//   - document_errors_total{document}, document_status{document,status}
//   - ledger_entries
//   - period_limit_usdc, period_spent_usdc, period_spent_ratio,
//     period_end_timestamp_seconds (only when usage is computed)
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	collector.RecordRun(rep)
//	if err := collector.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
//	    logger.Warn("failed to write metrics", "error", err)
//	}
package metrics
