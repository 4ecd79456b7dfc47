package mandate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the spending position of a mandate within its current period.
type Status struct {
	// Period is the mandate's renewal unit.
	Period Period

	// WindowStart and WindowEnd bound the current period [start, end).
	WindowStart time.Time
	WindowEnd   time.Time

	// Limit is the mandate's maxAmountPerPeriod.
	Limit decimal.Decimal

	// Spent is the sum of ledger amounts inside the window.
	Spent decimal.Decimal

	// Remaining is Limit - Spent, never below zero.
	Remaining decimal.Decimal

	// Percentage is Spent / Limit (0.0-1.0, may exceed 1.0).
	Percentage float64

	// Entries is the number of ledger entries counted in the window.
	Entries int

	// Skipped is the number of entries without an amount or a parsable timestamp.
	Skipped int

	// Exceeded indicates Spent > Limit.
	Exceeded bool

	// AlertTriggered indicates Percentage reached the alert threshold.
	AlertTriggered bool
}

// Usage computes the spending status of m at time now.
//
// Entries are attributed by timestamp. Entries outside the current window are
// ignored; entries that cannot be attributed are counted in Skipped. An
// alertThreshold of zero disables alerts.
func Usage(m *Mandate, entries []LedgerEntry, now time.Time, alertThreshold float64) (*Status, error) {
	start, end, err := Window(m, now)
	if err != nil {
		return nil, err
	}

	status := &Status{
		Period:      m.Period,
		WindowStart: start,
		WindowEnd:   end,
		Limit:       m.MaxAmountPerPeriod,
		Spent:       decimal.Zero,
	}

	for _, entry := range entries {
		if entry.Amount == nil || entry.Timestamp == "" {
			status.Skipped++
			continue
		}
		ts, err := ParseDate(entry.Timestamp)
		if err != nil {
			status.Skipped++
			continue
		}
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		status.Spent = status.Spent.Add(*entry.Amount)
		status.Entries++
	}

	status.Remaining = status.Limit.Sub(status.Spent)
	if status.Remaining.IsNegative() {
		status.Remaining = decimal.Zero
	}

	switch {
	case status.Limit.IsPositive():
		status.Percentage = status.Spent.Div(status.Limit).InexactFloat64()
	case status.Spent.IsPositive():
		status.Percentage = 1.0
	}

	status.Exceeded = status.Spent.GreaterThan(status.Limit)
	status.AlertTriggered = alertThreshold > 0 && status.Percentage >= alertThreshold

	return status, nil
}
