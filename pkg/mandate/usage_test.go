package mandate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUsage(t *testing.T) {
	m := &Mandate{
		MaxAmountPerPeriod: decimal.NewFromInt(100),
		Period:             PeriodMonth,
		PeriodStart:        "2025-01-01",
	}
	entries := []LedgerEntry{
		{Amount: amount("30"), Timestamp: "2025-01-05T10:00:00Z"},
		{Amount: amount("20.5"), Timestamp: "2025-01-10"},
		{Amount: amount("99"), Timestamp: "2024-12-31T23:59:59Z"},
		{Amount: amount("10"), Timestamp: "2025-02-01T00:00:00Z"},
		{Timestamp: "2025-01-06"},
		{Amount: amount("5")},
		{Amount: amount("5"), Timestamp: "last tuesday"},
	}

	status, err := Usage(m, entries, date(t, "2025-01-15T00:00:00Z"), 0.5)
	require.NoError(t, err)

	assert.Equal(t, PeriodMonth, status.Period)
	assert.True(t, status.Spent.Equal(decimal.RequireFromString("50.5")), "spent = %s", status.Spent)
	assert.True(t, status.Remaining.Equal(decimal.RequireFromString("49.5")), "remaining = %s", status.Remaining)
	assert.InDelta(t, 0.505, status.Percentage, 1e-9)
	assert.Equal(t, 2, status.Entries)
	assert.Equal(t, 3, status.Skipped)
	assert.False(t, status.Exceeded)
	assert.True(t, status.AlertTriggered)
}

func TestUsage_Exceeded(t *testing.T) {
	m := &Mandate{
		MaxAmountPerPeriod: decimal.NewFromInt(10),
		Period:             PeriodDay,
		PeriodStart:        "2025-01-01",
	}
	entries := []LedgerEntry{
		{Amount: amount("7.5"), Timestamp: "2025-01-03T01:00:00Z"},
		{Amount: amount("7.5"), Timestamp: "2025-01-03T02:00:00Z"},
	}

	status, err := Usage(m, entries, date(t, "2025-01-03T12:00:00Z"), 0)
	require.NoError(t, err)

	assert.True(t, status.Exceeded)
	assert.True(t, status.Remaining.IsZero())
	assert.InDelta(t, 1.5, status.Percentage, 1e-9)
	assert.False(t, status.AlertTriggered, "zero threshold disables alerts")
}

func TestUsage_ZeroLimit(t *testing.T) {
	m := &Mandate{
		MaxAmountPerPeriod: decimal.Zero,
		Period:             PeriodWeek,
		PeriodStart:        "2025-01-06",
	}
	now := date(t, "2025-01-08T00:00:00Z")

	status, err := Usage(m, nil, now, 0.8)
	require.NoError(t, err)
	assert.Zero(t, status.Percentage)
	assert.False(t, status.Exceeded)
	assert.False(t, status.AlertTriggered)

	status, err = Usage(m, []LedgerEntry{{Amount: amount("0.01"), Timestamp: "2025-01-07"}}, now, 0.8)
	require.NoError(t, err)
	assert.Equal(t, 1.0, status.Percentage)
	assert.True(t, status.Exceeded)
	assert.True(t, status.AlertTriggered)
}

func TestUsage_ExactDecimalSum(t *testing.T) {
	m := &Mandate{
		MaxAmountPerPeriod: decimal.RequireFromString("0.3"),
		Period:             PeriodDay,
		PeriodStart:        "2025-01-01",
	}
	entries := []LedgerEntry{
		{Amount: amount("0.1"), Timestamp: "2025-01-01T01:00:00Z"},
		{Amount: amount("0.2"), Timestamp: "2025-01-01T02:00:00Z"},
	}

	status, err := Usage(m, entries, date(t, "2025-01-01T12:00:00Z"), 0)
	require.NoError(t, err)
	assert.False(t, status.Exceeded)
	assert.True(t, status.Remaining.IsZero())
}

func TestUsage_InvalidPeriodStart(t *testing.T) {
	m := &Mandate{MaxAmountPerPeriod: decimal.NewFromInt(1), Period: PeriodDay, PeriodStart: "soon"}

	_, err := Usage(m, nil, time.Now(), 0)
	assert.Error(t, err)
}
