// Package mandate models spending mandates and their ledgers.
//
// # Overview
//
// A mandate caps spending at MaxAmountPerPeriod per Period (day, week or
// month), with periods anchored at PeriodStart. A ledger is an ordered list
// of recorded transactions (amount and timestamp) against that mandate.
//
// Documents are validated in their decoded JSON form by the schema/validator
// package. This package converts documents that validated cleanly into typed
// records and computes where the mandate stands in its current period.
//
// # Period Windows
//
// Unlike rolling windows, mandate periods are calendar-anchored:
//
//   - day: [start + n days, start + n+1 days)
//   - week: [start + 7n days, start + 7(n+1) days)
//   - month: same day-of-month as periodStart, clamped for short months
//
// # Usage
//
//	m, _ := mandate.FromValue(mandateDoc)
//	entries, _ := mandate.EntriesFromValue(ledgerDoc)
//
//	status, err := mandate.Usage(m, entries, time.Now(), 0.8)
//	if err != nil {
//	    return err
//	}
//	if status.Exceeded {
//	    // Spending is over the cap for this period
//	}
//
// Amounts are summed with shopspring/decimal so that ledgers of many small
// USDC amounts do not accumulate float rounding error.
package mandate
