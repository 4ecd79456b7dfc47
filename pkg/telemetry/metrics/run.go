package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/moltaidev/usdc-mandate/pkg/config"
)

// RunMetrics tracks check runs.
//
// Metrics:
//   - mandate_check_runs_total: Runs by outcome (passed, failed, aborted)
//   - mandate_check_run_duration_seconds: Validation duration histogram
//   - mandate_check_last_run_timestamp_seconds: Start time of the last run
//   - mandate_check_last_run_success: 1 if the last run passed, else 0
type RunMetrics struct {
	runsTotal        *prometheus.CounterVec
	runDuration      prometheus.Histogram
	lastRunTimestamp prometheus.Gauge
	lastRunSuccess   prometheus.Gauge
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: Subsystem,
				Name:      "runs_total",
				Help:      "Total number of mandate check runs",
			},
			[]string{"outcome"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of mandate check runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs to ~1.6s
			},
		),

		lastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: Subsystem,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last check run started",
			},
		),

		lastRunSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: Subsystem,
				Name:      "last_run_success",
				Help:      "Whether the last check run passed (1) or not (0)",
			},
		),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.runDuration,
		rm.lastRunTimestamp,
		rm.lastRunSuccess,
	)

	// Expose all outcomes from the first scrape.
	for _, outcome := range []string{"passed", "failed", "aborted"} {
		rm.runsTotal.WithLabelValues(outcome)
	}

	return rm
}

// RecordRun records one run.
func (rm *RunMetrics) RecordRun(outcome string, started time.Time, duration time.Duration) {
	rm.runsTotal.WithLabelValues(outcome).Inc()
	rm.runDuration.Observe(duration.Seconds())
	rm.lastRunTimestamp.Set(float64(started.UnixNano()) / 1e9)

	if outcome == "passed" {
		rm.lastRunSuccess.Set(1)
	} else {
		rm.lastRunSuccess.Set(0)
	}
}
