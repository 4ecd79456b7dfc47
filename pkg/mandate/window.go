package mandate

import (
	"fmt"
	"time"
)

// dateLayouts are the periodStart and timestamp formats understood when
// computing usage. Validation itself only requires a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or date-time. Values without a zone are
// taken as UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Window returns the period window containing now, anchored at the mandate's
// periodStart. Before periodStart the first window is returned.
//
// Monthly windows keep the day-of-month of periodStart, clamped to the length
// of shorter months (a Jan 31 start gives Feb 28/29, then Mar 31).
func Window(m *Mandate, now time.Time) (start, end time.Time, err error) {
	anchor, err := ParseDate(m.PeriodStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid periodStart: %w", err)
	}
	if !m.Period.IsValid() {
		return time.Time{}, time.Time{}, fmt.Errorf("unsupported period %q", m.Period)
	}

	n := 0
	if now.After(anchor) {
		n = estimatePeriods(m.Period, anchor, now)
		// The estimate may be off by one around DST changes and month ends.
		for n > 0 && periodStartAt(m.Period, anchor, n).After(now) {
			n--
		}
		for !periodStartAt(m.Period, anchor, n+1).After(now) {
			n++
		}
	}

	return periodStartAt(m.Period, anchor, n), periodStartAt(m.Period, anchor, n+1), nil
}

// estimatePeriods guesses how many whole periods lie between anchor and now.
func estimatePeriods(p Period, anchor, now time.Time) int {
	switch p {
	case PeriodDay:
		return int(now.Sub(anchor) / (24 * time.Hour))
	case PeriodWeek:
		return int(now.Sub(anchor) / (7 * 24 * time.Hour))
	case PeriodMonth:
		months := (now.Year()-anchor.Year())*12 + int(now.Month()-anchor.Month())
		if months < 0 {
			return 0
		}
		return months
	}
	return 0
}

// periodStartAt returns the start of the n-th period after anchor.
func periodStartAt(p Period, anchor time.Time, n int) time.Time {
	switch p {
	case PeriodDay:
		return anchor.AddDate(0, 0, n)
	case PeriodWeek:
		return anchor.AddDate(0, 0, 7*n)
	case PeriodMonth:
		return addMonthsClamped(anchor, n)
	}
	return anchor
}

// addMonthsClamped adds n months without overflowing into the next month.
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)

	day := t.Day()
	if last := daysIn(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
