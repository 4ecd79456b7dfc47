package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/moltaidev/usdc-mandate/pkg/config"
	"github.com/moltaidev/usdc-mandate/pkg/mandate"
	"github.com/moltaidev/usdc-mandate/pkg/report"
)

// Subsystem is the metric subsystem shared by all check metrics.
const Subsystem = "check"

// Collector owns a Prometheus registry holding the check run, document and
// usage metrics.
//
// A single check process records one run, so the collector is normally
// written to a textfile once and discarded. In watch mode the same collector
// accumulates across runs and can also be scraped over HTTP.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	runMetrics      *RunMetrics
	documentMetrics *DocumentMetrics
	usageMetrics    *UsageMetrics
}

// NewCollector creates a new metrics collector. If registry is nil a fresh
// registry is created; the global default registry is never used so that
// textfile output contains only check metrics.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		runMetrics:      NewRunMetrics(cfg, registry),
		documentMetrics: NewDocumentMetrics(cfg, registry),
		usageMetrics:    NewUsageMetrics(cfg, registry),
	}
}

// RecordRun records the outcome of a check run.
func (c *Collector) RecordRun(rep *report.Report) {
	if !c.config.Enabled || rep == nil {
		return
	}

	c.runMetrics.RecordRun(Outcome(rep), rep.StartedAt, rep.Duration)
	c.documentMetrics.RecordResult(&rep.Mandate)
	if rep.Ledger != nil {
		c.documentMetrics.RecordResult(rep.Ledger)
	}
}

// RecordUsage records the spending position of the current period.
func (c *Collector) RecordUsage(status *mandate.Status) {
	if !c.config.Enabled || status == nil {
		return
	}

	c.usageMetrics.Record(status)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Outcome returns the run outcome label for a report.
func Outcome(rep *report.Report) string {
	switch {
	case rep.Aborted:
		return "aborted"
	case rep.Passed:
		return "passed"
	default:
		return "failed"
	}
}
