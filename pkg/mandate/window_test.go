package mandate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := ParseDate(s)
	require.NoError(t, err)
	return ts
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-01-01", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2025-01-01T10:30:00Z", want: time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)},
		{in: "2025-01-01T10:30:00.250Z", want: time.Date(2025, 1, 1, 10, 30, 0, 250_000_000, time.UTC)},
		{in: "2025-01-01T10:30:00", want: time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)},
		{in: "2025-01-01T12:00:00+02:00", want: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)},
		{in: "01/02/2025", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		period    Period
		start     string
		now       string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "day mid period",
			period:    PeriodDay,
			start:     "2025-01-01",
			now:       "2025-01-05T12:00:00Z",
			wantStart: "2025-01-05",
			wantEnd:   "2025-01-06",
		},
		{
			name:      "day anchored at a time of day",
			period:    PeriodDay,
			start:     "2025-01-01T09:00:00Z",
			now:       "2025-01-05T08:00:00Z",
			wantStart: "2025-01-04T09:00:00Z",
			wantEnd:   "2025-01-05T09:00:00Z",
		},
		{
			name:      "week on boundary",
			period:    PeriodWeek,
			start:     "2025-01-06",
			now:       "2025-01-20T00:00:00Z",
			wantStart: "2025-01-20",
			wantEnd:   "2025-01-27",
		},
		{
			name:      "week just before boundary",
			period:    PeriodWeek,
			start:     "2025-01-06",
			now:       "2025-01-19T23:59:59Z",
			wantStart: "2025-01-13",
			wantEnd:   "2025-01-20",
		},
		{
			name:      "month",
			period:    PeriodMonth,
			start:     "2025-01-15",
			now:       "2025-04-20T00:00:00Z",
			wantStart: "2025-04-15",
			wantEnd:   "2025-05-15",
		},
		{
			name:      "month before day of month",
			period:    PeriodMonth,
			start:     "2025-01-15",
			now:       "2025-04-10T00:00:00Z",
			wantStart: "2025-03-15",
			wantEnd:   "2025-04-15",
		},
		{
			name:      "month clamped in february",
			period:    PeriodMonth,
			start:     "2025-01-31",
			now:       "2025-02-15T00:00:00Z",
			wantStart: "2025-01-31",
			wantEnd:   "2025-02-28",
		},
		{
			name:      "month after clamp returns to day 31",
			period:    PeriodMonth,
			start:     "2025-01-31",
			now:       "2025-03-05T00:00:00Z",
			wantStart: "2025-02-28",
			wantEnd:   "2025-03-31",
		},
		{
			name:      "leap year february",
			period:    PeriodMonth,
			start:     "2024-01-30",
			now:       "2024-03-01T00:00:00Z",
			wantStart: "2024-02-29",
			wantEnd:   "2024-03-30",
		},
		{
			name:      "before period start",
			period:    PeriodWeek,
			start:     "2025-06-01",
			now:       "2025-01-01T00:00:00Z",
			wantStart: "2025-06-01",
			wantEnd:   "2025-06-08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mandate{Period: tt.period, PeriodStart: tt.start}

			start, end, err := Window(m, date(t, tt.now))
			require.NoError(t, err)
			assert.True(t, date(t, tt.wantStart).Equal(start), "start = %s, want %s", start, tt.wantStart)
			assert.True(t, date(t, tt.wantEnd).Equal(end), "end = %s, want %s", end, tt.wantEnd)
		})
	}
}

func TestWindow_Errors(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := Window(&Mandate{Period: PeriodDay, PeriodStart: "yesterday"}, now)
	assert.Error(t, err)

	_, _, err = Window(&Mandate{Period: "year", PeriodStart: "2025-01-01"}, now)
	assert.Error(t, err)
}
