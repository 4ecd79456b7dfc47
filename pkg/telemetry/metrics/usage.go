package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/moltaidev/usdc-mandate/pkg/config"
	"github.com/moltaidev/usdc-mandate/pkg/mandate"
)

// UsageMetrics tracks spending against the mandate in the current period.
//
// Metrics:
//   - mandate_check_period_limit_usdc: maxAmountPerPeriod
//   - mandate_check_period_spent_usdc: Amount spent in the current period
//   - mandate_check_period_spent_ratio: Spent / limit
//   - mandate_check_period_end_timestamp_seconds: When the current period ends
type UsageMetrics struct {
	limit      prometheus.Gauge
	spent      prometheus.Gauge
	ratio      prometheus.Gauge
	periodEnds prometheus.Gauge
}

// NewUsageMetrics creates and registers usage metrics.
func NewUsageMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UsageMetrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: Subsystem,
			Name:      name,
			Help:      help,
		})
	}

	um := &UsageMetrics{
		limit:      gauge("period_limit_usdc", "Spending cap for the current period in USDC"),
		spent:      gauge("period_spent_usdc", "Amount spent in the current period in USDC"),
		ratio:      gauge("period_spent_ratio", "Fraction of the period cap spent"),
		periodEnds: gauge("period_end_timestamp_seconds", "Unix time the current period ends"),
	}

	registry.MustRegister(um.limit, um.spent, um.ratio, um.periodEnds)

	return um
}

// Record sets the usage gauges from a status.
func (um *UsageMetrics) Record(status *mandate.Status) {
	um.limit.Set(status.Limit.InexactFloat64())
	um.spent.Set(status.Spent.InexactFloat64())
	um.ratio.Set(status.Percentage)
	um.periodEnds.Set(float64(status.WindowEnd.Unix()))
}
