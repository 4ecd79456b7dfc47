package report

import (
	"time"

	verrors "github.com/moltaidev/usdc-mandate/pkg/schema/errors"
)

// Kind identifies which document a result belongs to.
type Kind = verrors.Document

const (
	KindMandate = verrors.DocumentMandate
	KindLedger  = verrors.DocumentLedger
)

// Document is a loaded document, or the reason it could not be loaded.
// Exactly one of Value and Err is meaningful: when Err is nil, Value holds
// the decoded JSON (which may itself be nil for a literal null).
type Document struct {
	Kind  Kind
	Path  string
	Value any
	Err   error
}

// Status is the outcome for one document.
type Status string

const (
	StatusValid      Status = "valid"      // Loaded and passed the schema
	StatusInvalid    Status = "invalid"    // Loaded but failed the schema
	StatusUnreadable Status = "unreadable" // Missing, unreadable or not JSON
	StatusSkipped    Status = "skipped"    // Optional document not present
)

// Result is the outcome for one document.
type Result struct {
	Kind    Kind                 `json:"kind"`
	Path    string               `json:"path"`
	Status  Status               `json:"status"`
	Reason  verrors.SourceReason `json:"reason,omitempty"`
	Cause   string               `json:"cause,omitempty"`
	Errors  []string             `json:"errors,omitempty"`
	Entries int                  `json:"entries"`
}

// Failed reports whether this result fails the run.
func (r *Result) Failed() bool {
	return r.Status == StatusInvalid || r.Status == StatusUnreadable
}

// Report is the outcome of one check run.
type Report struct {
	RunID     string        `json:"run_id"`
	Workspace string        `json:"workspace,omitempty"`
	Mandate   Result        `json:"mandate"`
	Ledger    *Result       `json:"ledger,omitempty"`
	Passed    bool          `json:"passed"`
	Aborted   bool          `json:"aborted"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// ErrorCount returns the total number of schema and source errors.
func (r *Report) ErrorCount() int {
	count := countErrors(&r.Mandate)
	if r.Ledger != nil {
		count += countErrors(r.Ledger)
	}
	return count
}

// Errors returns all error messages, mandate first.
func (r *Report) Errors() []string {
	var msgs []string
	msgs = append(msgs, resultErrors(&r.Mandate)...)
	if r.Ledger != nil {
		msgs = append(msgs, resultErrors(r.Ledger)...)
	}
	return msgs
}

// LedgerStatus returns the ledger status, or "" when the ledger was not
// evaluated.
func (r *Report) LedgerStatus() Status {
	if r.Ledger == nil {
		return ""
	}
	return r.Ledger.Status
}

// ExitCode maps a report to the process exit status: 0 when it passed,
// 1 otherwise.
func ExitCode(r *Report) int {
	if r != nil && r.Passed {
		return 0
	}
	return 1
}

func countErrors(r *Result) int {
	if r.Status == StatusUnreadable {
		return 1
	}
	return len(r.Errors)
}

func resultErrors(r *Result) []string {
	if r.Status != StatusUnreadable {
		return r.Errors
	}
	if r.Cause == "" {
		return []string{string(r.Reason) + ": " + r.Path}
	}
	return []string{string(r.Reason) + ": " + r.Path + ": " + r.Cause}
}
