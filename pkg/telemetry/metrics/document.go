package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/moltaidev/usdc-mandate/pkg/config"
	"github.com/moltaidev/usdc-mandate/pkg/report"
)

var documentStatuses = []report.Status{
	report.StatusValid,
	report.StatusInvalid,
	report.StatusUnreadable,
	report.StatusSkipped,
}

// DocumentMetrics tracks per-document validation results.
//
// Metrics:
//   - mandate_check_document_errors_total: Validation errors by document
//   - mandate_check_document_status: 1 for the current status of each document
//   - mandate_check_ledger_entries: Entries in the last valid ledger
type DocumentMetrics struct {
	errorsTotal   *prometheus.CounterVec
	status        *prometheus.GaugeVec
	ledgerEntries prometheus.Gauge
}

// NewDocumentMetrics creates and registers document metrics.
func NewDocumentMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DocumentMetrics {
	dm := &DocumentMetrics{
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: Subsystem,
				Name:      "document_errors_total",
				Help:      "Total number of validation errors by document",
			},
			[]string{"document"},
		),

		status: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: Subsystem,
				Name:      "document_status",
				Help:      "Current validation status of each document (1 = active status)",
			},
			[]string{"document", "status"},
		),

		ledgerEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: Subsystem,
				Name:      "ledger_entries",
				Help:      "Number of entries in the last valid ledger",
			},
		),
	}

	registry.MustRegister(dm.errorsTotal, dm.status, dm.ledgerEntries)

	return dm
}

// RecordResult records the result for one document.
func (dm *DocumentMetrics) RecordResult(res *report.Result) {
	doc := string(res.Kind)

	if n := len(res.Errors); n > 0 {
		dm.errorsTotal.WithLabelValues(doc).Add(float64(n))
	} else if res.Status == report.StatusUnreadable {
		dm.errorsTotal.WithLabelValues(doc).Inc()
	}

	for _, s := range documentStatuses {
		value := 0.0
		if s == res.Status {
			value = 1
		}
		dm.status.WithLabelValues(doc, string(s)).Set(value)
	}

	if res.Kind == report.KindLedger && res.Status == report.StatusValid {
		dm.ledgerEntries.Set(float64(res.Entries))
	}
}
