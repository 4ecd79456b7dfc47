// Package validator validates mandate and ledger documents.
//
// Documents are checked in their decoded JSON form (the values produced by
// encoding/json when unmarshalling into an any). Each schema is a table of
// FieldSpec descriptors walked by a generic loop, so adding a field means
// adding a table row.
//
// # Mandate
//
//   - Not an object: one structural error, nothing else is checked.
//   - Presence pass: maxAmountPerPeriod, period and periodStart must be
//     present and non-null.
//   - Type pass: each present, non-null field must hold the right kind and
//     range. allowedRecipients, when present, must be an array.
//
// # Ledger
//
//   - Not an array: one structural error.
//   - Each entry must be an object; amount (if present) a non-negative
//     number and timestamp (if present) a string.
//
// # Basic Usage
//
//	v := validator.NewMandateValidator()
//	if err := v.Validate(doc); err != nil {
//	    if errList, ok := err.(*errors.ErrorList); ok {
//	        fmt.Println("Mandate errors:", errList.Joined())
//	    }
//	}
//
// All validators are pure: the same input always yields the same errors in
// the same order.
package validator
