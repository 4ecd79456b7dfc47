package errors

import "fmt"

// SourceReason explains why a document could not be obtained.
type SourceReason string

const (
	SourceMissing    SourceReason = "missing"    // File does not exist
	SourceUnreadable SourceReason = "unreadable" // File exists but could not be read
	SourceUnparsable SourceReason = "unparsable" // File content is not valid JSON
)

// SourceError reports a document that never reached validation.
type SourceError struct {
	Document Document
	Path     string
	Reason   SourceReason
	Err      error
}

// NewSourceError creates a new SourceError.
func NewSourceError(doc Document, path string, reason SourceReason, err error) *SourceError {
	return &SourceError{
		Document: doc,
		Path:     path,
		Reason:   reason,
		Err:      err,
	}
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Document, e.Reason, e.Path)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Document, e.Reason, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error text, or an empty string.
func (e *SourceError) Cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
