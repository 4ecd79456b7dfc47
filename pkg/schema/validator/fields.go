package validator

import (
	"slices"

	"github.com/moltaidev/usdc-mandate/pkg/mandate"
)

// FieldSpec describes one field of a document schema.
type FieldSpec struct {
	// Name is the JSON field name.
	Name string

	// Required fields are reported as missing when absent or null.
	Required bool

	// Expected is the JSON kind the field should hold (informational).
	Expected Kind

	// Accept reports whether a present value is well-typed and in range.
	Accept func(v any) bool

	// Message is reported when Accept rejects the value.
	Message string

	// CheckNull applies Accept to explicit nulls. When false a null value is
	// treated like an absent one and only the presence check applies.
	CheckNull bool

	// Suggest optionally proposes a fix for a rejected value.
	Suggest func(v any) string
}

// applies reports whether the type check runs for a field lookup result.
func (f FieldSpec) applies(v any, present bool) bool {
	if !present {
		return false
	}
	if v == nil {
		return f.CheckNull
	}
	return true
}

// mandateFields is the mandate schema, in reporting order.
var mandateFields = []FieldSpec{
	{
		Name:     mandate.FieldMaxAmountPerPeriod,
		Required: true,
		Expected: KindNumber,
		Accept:   isNonNegativeNumber,
		Message:  "maxAmountPerPeriod must be a non-negative number",
	},
	{
		Name:     mandate.FieldPeriod,
		Required: true,
		Expected: KindString,
		Accept:   isOneOf(mandate.PeriodNames()),
		Message:  "period must be one of: day, week, month",
		Suggest:  suggestPeriod,
	},
	{
		Name:     mandate.FieldPeriodStart,
		Required: true,
		Expected: KindString,
		Accept:   isString,
		Message:  "periodStart must be an ISO date string",
	},
	{
		Name:      mandate.FieldAllowedRecipients,
		Expected:  KindArray,
		Accept:    isArray,
		Message:   "allowedRecipients must be an array",
		CheckNull: true,
	},
}

// entryFields is the ledger entry schema. No field is required.
var entryFields = []FieldSpec{
	{
		Name:      mandate.FieldAmount,
		Expected:  KindNumber,
		Accept:    isNonNegativeNumber,
		Message:   "amount must be non-negative number",
		CheckNull: true,
	},
	{
		Name:      mandate.FieldTimestamp,
		Expected:  KindString,
		Accept:    isString,
		Message:   "timestamp must be string",
		CheckNull: true,
	},
}

func isNonNegativeNumber(v any) bool {
	n, ok := asNumber(v)
	return ok && n >= 0
}

func isString(v any) bool {
	return KindOf(v) == KindString
}

func isArray(v any) bool {
	return KindOf(v) == KindArray
}

func isOneOf(allowed []string) func(v any) bool {
	return func(v any) bool {
		s, ok := v.(string)
		return ok && slices.Contains(allowed, s)
	}
}
