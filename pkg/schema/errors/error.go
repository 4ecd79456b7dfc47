package errors

import (
	"fmt"
	"strings"
)

// ErrorType categorizes a validation problem.
type ErrorType string

const (
	ErrorTypeStructural ErrorType = "structural" // Top-level value has the wrong shape
	ErrorTypeField      ErrorType = "field"      // Missing, mistyped or out-of-range field
	ErrorTypeSource     ErrorType = "source"     // Document missing, unreadable or not JSON
)

// Document names the document an error belongs to.
type Document string

const (
	DocumentMandate Document = "mandate"
	DocumentLedger  Document = "ledger"
)

// NoIndex marks an error that does not refer to a ledger position.
const NoIndex = -1

// Error is a single validation problem.
type Error struct {
	Type       ErrorType // Category of error
	Document   Document  // Document the error was found in
	Field      string    // Field name, empty for structural errors
	Index      int       // Ledger entry position, NoIndex otherwise
	Message    string    // Exact user-facing message
	Suggestion string    // Suggested fix (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Suggestion))
	}

	return sb.String()
}

// ErrorList accumulates the errors found in one document, in the order the
// checks produced them.
type ErrorList struct {
	Document Document
	Errors   []*Error
}

// NewErrorList creates a new empty error list for a document.
func NewErrorList(doc Document) *ErrorList {
	return &ErrorList{
		Document: doc,
		Errors:   make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	if err.Document == "" {
		err.Document = el.Document
	}
	el.Errors = append(el.Errors, err)
}

// AddStructuralError adds an error about the shape of the whole document.
func (el *ErrorList) AddStructuralError(message string) {
	el.Add(&Error{
		Type:    ErrorTypeStructural,
		Index:   NoIndex,
		Message: message,
	})
}

// AddFieldError adds an error about a top-level field.
func (el *ErrorList) AddFieldError(field, message string) {
	el.Add(&Error{
		Type:    ErrorTypeField,
		Field:   field,
		Index:   NoIndex,
		Message: message,
	})
}

// AddFieldErrorWithSuggestion adds a field error carrying a suggestion.
func (el *ErrorList) AddFieldErrorWithSuggestion(field, message, suggestion string) {
	el.Add(&Error{
		Type:       ErrorTypeField,
		Field:      field,
		Index:      NoIndex,
		Message:    message,
		Suggestion: suggestion,
	})
}

// AddEntryError adds an error about the entry at index. An empty field means
// the entry itself is at fault.
func (el *ErrorList) AddEntryError(index int, field, message string) {
	el.Add(&Error{
		Type:    ErrorTypeField,
		Field:   field,
		Index:   index,
		Message: message,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Messages returns the user-facing message of every error, in order.
func (el *ErrorList) Messages() []string {
	msgs := make([]string, 0, len(el.Errors))
	for _, err := range el.Errors {
		msgs = append(msgs, err.Message)
	}
	return msgs
}

// Joined returns all messages joined with "; ".
func (el *ErrorList) Joined() string {
	return strings.Join(el.Messages(), "; ")
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	return fmt.Sprintf("%s: found %d error(s): %s", el.Document, el.Count(), el.Joined())
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the error list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// Messages extracts the message strings from an error returned by a
// validator. It returns nil for a nil error and the error text for errors
// that are not an *ErrorList.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	if el, ok := err.(*ErrorList); ok {
		return el.Messages()
	}
	return []string{err.Error()}
}
