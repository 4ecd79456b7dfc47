package validator

import (
	"fmt"

	"github.com/moltaidev/usdc-mandate/pkg/mandate"
	verrors "github.com/moltaidev/usdc-mandate/pkg/schema/errors"
)

// MsgMandateNotObject is the structural error for a mandate that is not an object.
const MsgMandateNotObject = "Mandate must be a JSON object"

// MandateValidator checks a decoded value against the mandate schema.
// It holds no per-call state and is safe for concurrent use.
type MandateValidator struct {
	fields []FieldSpec
}

// NewMandateValidator creates a new mandate validator.
func NewMandateValidator() *MandateValidator {
	return &MandateValidator{fields: mandateFields}
}

// Validate checks candidate and returns nil or an *errors.ErrorList.
//
// A non-object candidate yields exactly one structural error. Otherwise a
// presence pass reports every required field that is absent or null, and a
// type pass reports every present field with a bad value. Both passes always
// run in full.
func (v *MandateValidator) Validate(candidate any) error {
	errs := verrors.NewErrorList(verrors.DocumentMandate)

	lookup, ok := asObject(candidate)
	if !ok {
		errs.AddStructuralError(MsgMandateNotObject)
		return errs.ToError()
	}

	// Presence pass
	for _, field := range v.fields {
		if !field.Required {
			continue
		}
		if val, present := lookup(field.Name); !present || val == nil {
			errs.AddFieldErrorWithSuggestion(
				field.Name,
				fmt.Sprintf("Missing required field: %s", field.Name),
				verrors.SuggestMissingField(field.Name, exampleValue(field.Name)),
			)
		}
	}

	// Type pass
	for _, field := range v.fields {
		val, present := lookup(field.Name)
		if !field.applies(val, present) || field.Accept(val) {
			continue
		}

		suggestion := ""
		if field.Suggest != nil {
			suggestion = field.Suggest(val)
		}
		errs.AddFieldErrorWithSuggestion(field.Name, field.Message, suggestion)
	}

	return errs.ToError()
}

// Messages returns the error messages for candidate; empty means valid.
func (v *MandateValidator) Messages(candidate any) []string {
	return verrors.Messages(v.Validate(candidate))
}

func suggestPeriod(v any) string {
	s, ok := v.(string)
	if !ok {
		return verrors.SuggestValue("", mandate.PeriodNames())
	}
	return verrors.SuggestValue(s, mandate.PeriodNames())
}

func exampleValue(field string) string {
	switch field {
	case mandate.FieldMaxAmountPerPeriod:
		return "100"
	case mandate.FieldPeriod:
		return `"month"`
	case mandate.FieldPeriodStart:
		return `"2025-01-01"`
	}
	return ""
}
