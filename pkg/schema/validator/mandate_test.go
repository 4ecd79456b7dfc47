package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/moltaidev/usdc-mandate/pkg/schema/errors"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(doc), &v))
	return v
}

func validMandate() map[string]any {
	return map[string]any{
		"maxAmountPerPeriod": 100.0,
		"period":             "month",
		"periodStart":        "2025-01-01",
	}
}

func TestMandateValidator_NotAnObject(t *testing.T) {
	v := NewMandateValidator()

	for _, doc := range []string{`42`, `"mandate"`, `null`, `[]`, `[{"period":"day"}]`, `true`, `false`} {
		t.Run(doc, func(t *testing.T) {
			err := v.Validate(decode(t, doc))
			require.Error(t, err)

			errList, ok := err.(*verrors.ErrorList)
			require.True(t, ok, "expected *ErrorList, got %T", err)
			assert.Equal(t, []string{MsgMandateNotObject}, errList.Messages())
			assert.True(t, errList.HasErrorType(verrors.ErrorTypeStructural))
		})
	}
}

func TestMandateValidator_Valid(t *testing.T) {
	v := NewMandateValidator()

	assert.NoError(t, v.Validate(validMandate()))
	assert.Empty(t, v.Messages(decode(t, `{
		"maxAmountPerPeriod": 0,
		"period": "day",
		"periodStart": "2025-06-01T00:00:00Z",
		"allowedRecipients": ["0xabc", "0xdef"]
	}`)))
}

func TestMandateValidator_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "empty object",
			doc:  `{}`,
			want: []string{
				"Missing required field: maxAmountPerPeriod",
				"Missing required field: period",
				"Missing required field: periodStart",
			},
		},
		{
			name: "missing period only",
			doc:  `{"maxAmountPerPeriod": 5, "periodStart": "2025-01-01"}`,
			want: []string{"Missing required field: period"},
		},
		{
			name: "missing amount and start",
			doc:  `{"period": "week"}`,
			want: []string{
				"Missing required field: maxAmountPerPeriod",
				"Missing required field: periodStart",
			},
		},
		{
			name: "null counts as missing and skips the type check",
			doc:  `{"maxAmountPerPeriod": null, "period": null, "periodStart": null}`,
			want: []string{
				"Missing required field: maxAmountPerPeriod",
				"Missing required field: period",
				"Missing required field: periodStart",
			},
		},
	}

	v := NewMandateValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Messages(decode(t, tt.doc)))
		})
	}
}

func TestMandateValidator_MaxAmount(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"negative", -1.0, true},
		{"string number", "5", true},
		{"boolean", true, true},
		{"object", map[string]any{}, true},
		{"positive", 5.0, false},
		{"zero", 0.0, false},
		{"go int", 5, false},
		{"go negative int", -3, true},
		{"json.Number", json.Number("12.5"), false},
	}

	v := NewMandateValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMandate()
			m["maxAmountPerPeriod"] = tt.value

			msgs := v.Messages(m)
			if tt.wantErr {
				assert.Equal(t, []string{"maxAmountPerPeriod must be a non-negative number"}, msgs)
			} else {
				assert.Empty(t, msgs)
			}
		})
	}
}

func TestMandateValidator_Period(t *testing.T) {
	v := NewMandateValidator()

	for _, p := range []string{"day", "week", "month"} {
		m := validMandate()
		m["period"] = p
		assert.Empty(t, v.Messages(m), "period %q", p)
	}

	for _, bad := range []any{"year", "Day", "", 7.0, []any{"day"}} {
		m := validMandate()
		m["period"] = bad
		assert.Equal(t, []string{"period must be one of: day, week, month"}, v.Messages(m), "period %v", bad)
	}
}

func TestMandateValidator_PeriodSuggestion(t *testing.T) {
	m := validMandate()
	m["period"] = "wek"

	err := NewMandateValidator().Validate(m)
	require.Error(t, err)

	errList := err.(*verrors.ErrorList)
	require.Equal(t, 1, errList.Count())
	assert.Equal(t, "period", errList.Errors[0].Field)
	assert.Equal(t, "Did you mean 'week'?", errList.Errors[0].Suggestion)
	assert.Equal(t, "period must be one of: day, week, month", errList.Errors[0].Message)
}

func TestMandateValidator_PeriodStart(t *testing.T) {
	v := NewMandateValidator()

	m := validMandate()
	m["periodStart"] = 20250101.0
	assert.Equal(t, []string{"periodStart must be an ISO date string"}, v.Messages(m))

	// Any string passes; the date format is not checked.
	m["periodStart"] = "not a date"
	assert.Empty(t, v.Messages(m))
}

func TestMandateValidator_AllowedRecipients(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"array", []any{"0xabc"}, false},
		{"empty array", []any{}, false},
		{"typed slice", []string{"0xabc"}, false},
		{"string", "0xabc", true},
		{"object", map[string]any{"0xabc": true}, true},
		{"null", nil, true},
	}

	v := NewMandateValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMandate()
			m["allowedRecipients"] = tt.value

			msgs := v.Messages(m)
			if tt.wantErr {
				assert.Equal(t, []string{"allowedRecipients must be an array"}, msgs)
			} else {
				assert.Empty(t, msgs)
			}
		})
	}

	// Absent is fine.
	assert.Empty(t, v.Messages(validMandate()))
}

func TestMandateValidator_Accumulates(t *testing.T) {
	doc := `{
		"maxAmountPerPeriod": -10,
		"period": "year",
		"allowedRecipients": "everyone"
	}`

	want := []string{
		"Missing required field: periodStart",
		"maxAmountPerPeriod must be a non-negative number",
		"period must be one of: day, week, month",
		"allowedRecipients must be an array",
	}
	assert.Equal(t, want, NewMandateValidator().Messages(decode(t, doc)))
}

func TestMandateValidator_Idempotent(t *testing.T) {
	v := NewMandateValidator()
	doc := decode(t, `{"maxAmountPerPeriod": "x", "period": "fortnight"}`)

	first := v.Messages(doc)
	second := v.Messages(doc)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestMandateValidator_TypedMap(t *testing.T) {
	doc := map[string]string{"period": "day", "periodStart": "2025-01-01"}

	assert.Equal(t,
		[]string{"Missing required field: maxAmountPerPeriod"},
		NewMandateValidator().Messages(doc),
	)
}
