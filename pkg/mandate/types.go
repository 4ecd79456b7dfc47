package mandate

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Period is the recurrence unit over which the spending cap resets.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// AllowedPeriods lists the valid periods in the order they are reported.
var AllowedPeriods = []Period{PeriodDay, PeriodWeek, PeriodMonth}

// IsValid reports whether p is one of AllowedPeriods.
func (p Period) IsValid() bool {
	for _, allowed := range AllowedPeriods {
		if p == allowed {
			return true
		}
	}
	return false
}

// PeriodNames returns AllowedPeriods as strings.
func PeriodNames() []string {
	names := make([]string, len(AllowedPeriods))
	for i, p := range AllowedPeriods {
		names[i] = string(p)
	}
	return names
}

// JSON field names of the mandate document.
const (
	FieldMaxAmountPerPeriod = "maxAmountPerPeriod"
	FieldPeriod             = "period"
	FieldPeriodStart        = "periodStart"
	FieldAllowedRecipients  = "allowedRecipients"
)

// JSON field names of a ledger entry.
const (
	FieldAmount    = "amount"
	FieldTimestamp = "timestamp"
)

// Mandate is a declared recurring spending limit.
type Mandate struct {
	// MaxAmountPerPeriod is the cap on spending within one period.
	MaxAmountPerPeriod decimal.Decimal

	// Period is the renewal unit of the cap.
	Period Period

	// PeriodStart is the raw start date as written in the document.
	PeriodStart string

	// AllowedRecipients is kept opaque; nil when the field is absent.
	AllowedRecipients []any
}

// LedgerEntry is one recorded transaction. Both fields are optional.
type LedgerEntry struct {
	// Amount is nil when the entry has no amount.
	Amount *decimal.Decimal

	// Timestamp is empty when the entry has no timestamp.
	Timestamp string
}

// FromValue converts a decoded mandate document into a Mandate.
// The value must already have passed validation.
func FromValue(v any) (*Mandate, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("mandate is %T, not an object", v)
	}

	amount, err := decimalField(obj, FieldMaxAmountPerPeriod)
	if err != nil {
		return nil, err
	}
	if amount == nil {
		return nil, fmt.Errorf("mandate has no %s", FieldMaxAmountPerPeriod)
	}

	period, _ := obj[FieldPeriod].(string)
	start, _ := obj[FieldPeriodStart].(string)
	recipients, _ := obj[FieldAllowedRecipients].([]any)

	m := &Mandate{
		MaxAmountPerPeriod: *amount,
		Period:             Period(period),
		PeriodStart:        start,
		AllowedRecipients:  recipients,
	}
	if !m.Period.IsValid() {
		return nil, fmt.Errorf("mandate period %q is not supported", period)
	}
	return m, nil
}

// EntriesFromValue converts a decoded ledger document into entries.
// The value must already have passed validation.
func EntriesFromValue(v any) ([]LedgerEntry, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("ledger is %T, not an array", v)
	}

	entries := make([]LedgerEntry, 0, len(arr))
	for i, raw := range arr {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ledger entry %d is %T, not an object", i, raw)
		}

		amount, err := decimalField(obj, FieldAmount)
		if err != nil {
			return nil, fmt.Errorf("ledger entry %d: %w", i, err)
		}
		ts, _ := obj[FieldTimestamp].(string)

		entries = append(entries, LedgerEntry{Amount: amount, Timestamp: ts})
	}
	return entries, nil
}

// decimalField reads a numeric field. It returns nil when the field is absent.
func decimalField(obj map[string]any, name string) (*decimal.Decimal, error) {
	raw, ok := obj[name]
	if !ok || raw == nil {
		return nil, nil
	}
	f, ok := raw.(float64)
	if !ok {
		return nil, fmt.Errorf("%s is %T, not a number", name, raw)
	}
	d := decimal.NewFromFloat(f)
	return &d, nil
}
