// Package errors provides the error taxonomy for mandate and ledger validation.
//
// Every problem found in a document is an *Error tagged with an ErrorType:
//
// ErrorTypeStructural: the top-level value has the wrong shape (the mandate is
// not an object, the ledger is not an array). A structural error is always the
// only error reported for its document.
//
// ErrorTypeField: a named field, or a field of an indexed ledger entry, is
// missing, mistyped or out of range. Field errors accumulate.
//
// ErrorTypeSource: the document could not be located, read or parsed as JSON.
// Source errors are carried by *SourceError rather than an ErrorList because
// they abort processing of the document instead of accumulating.
//
// # Basic Usage
//
//	errList := errors.NewErrorList(errors.DocumentMandate)
//	errList.AddFieldError("period", "period must be one of: day, week, month")
//
//	if errList.HasErrors() {
//	    fmt.Println(errList.Joined()) // messages joined with "; "
//	}
//
// # Suggestions
//
// Errors may carry a suggestion that never alters the message text:
//
//	errors.SuggestValue("wek", []string{"day", "week", "month"})
//	// Returns: "Did you mean 'week'?"
package errors
