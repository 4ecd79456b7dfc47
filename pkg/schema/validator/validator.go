package validator

// Validator bundles the mandate and ledger validators.
// The two are independent: neither result depends on the other document.
type Validator struct {
	mandate *MandateValidator
	ledger  *LedgerValidator
}

// NewValidator creates a new validator with both document schemas.
func NewValidator() *Validator {
	return &Validator{
		mandate: NewMandateValidator(),
		ledger:  NewLedgerValidator(),
	}
}

// ValidateMandate runs the mandate schema.
func (v *Validator) ValidateMandate(candidate any) error {
	return v.mandate.Validate(candidate)
}

// ValidateLedger runs the ledger schema.
func (v *Validator) ValidateLedger(candidate any) error {
	return v.ledger.Validate(candidate)
}
