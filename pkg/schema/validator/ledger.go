package validator

import (
	"fmt"

	verrors "github.com/moltaidev/usdc-mandate/pkg/schema/errors"
)

// MsgLedgerNotArray is the structural error for a ledger that is not an array.
const MsgLedgerNotArray = "Ledger must be a JSON array"

// LedgerValidator checks a decoded value against the ledger schema.
type LedgerValidator struct {
	fields []FieldSpec
}

// NewLedgerValidator creates a new ledger validator.
func NewLedgerValidator() *LedgerValidator {
	return &LedgerValidator{fields: entryFields}
}

// Validate checks candidate and returns nil or an *errors.ErrorList.
// Messages refer to entries by 0-based position, e.g. "Ledger[3]: ...".
func (v *LedgerValidator) Validate(candidate any) error {
	errs := verrors.NewErrorList(verrors.DocumentLedger)

	entries, ok := asArray(candidate)
	if !ok {
		errs.AddStructuralError(MsgLedgerNotArray)
		return errs.ToError()
	}

	for i, entry := range entries {
		lookup, ok := asObject(entry)
		if !ok {
			errs.AddEntryError(i, "", fmt.Sprintf("Ledger[%d]: must be object", i))
			continue
		}

		for _, field := range v.fields {
			val, present := lookup(field.Name)
			if !field.applies(val, present) || field.Accept(val) {
				continue
			}
			errs.AddEntryError(i, field.Name, fmt.Sprintf("Ledger[%d]: %s", i, field.Message))
		}
	}

	return errs.ToError()
}

// Messages returns the error messages for candidate; empty means valid.
func (v *LedgerValidator) Messages(candidate any) []string {
	return verrors.Messages(v.Validate(candidate))
}

// EntryCount returns the number of entries in a ledger value, or 0 when it
// is not an array.
func EntryCount(candidate any) int {
	entries, ok := asArray(candidate)
	if !ok {
		return 0
	}
	return len(entries)
}
