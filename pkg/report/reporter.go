package report

import (
	"errors"
	"time"

	"github.com/google/uuid"

	verrors "github.com/moltaidev/usdc-mandate/pkg/schema/errors"
	"github.com/moltaidev/usdc-mandate/pkg/schema/validator"
)

// Reporter runs the document pair through the validators.
type Reporter struct {
	validator *validator.Validator
	now       func() time.Time
	newID     func() string
	workspace string
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock sets the time source used for StartedAt and Duration.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}

// WithIDGenerator sets the run ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(r *Reporter) {
		r.newID = newID
	}
}

// WithWorkspace records the workspace directory in every report.
func WithWorkspace(dir string) Option {
	return func(r *Reporter) {
		r.workspace = dir
	}
}

// NewReporter creates a new reporter. Run IDs default to random UUIDs.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		validator: validator.NewValidator(),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates the mandate and ledger documents and returns the combined
// report. It performs no I/O.
func (r *Reporter) Run(mandate, ledger Document) *Report {
	started := r.now()

	rep := &Report{
		RunID:     r.newID(),
		Workspace: r.workspace,
		StartedAt: started,
	}

	rep.Mandate = r.evaluateMandate(mandate)
	if rep.Mandate.Status == StatusUnreadable {
		rep.Aborted = true
		rep.Duration = r.now().Sub(started)
		return rep
	}

	ledgerResult := r.evaluateLedger(ledger)
	rep.Ledger = &ledgerResult

	rep.Passed = rep.Mandate.Status == StatusValid && !rep.Ledger.Failed()
	rep.Duration = r.now().Sub(started)
	return rep
}

func (r *Reporter) evaluateMandate(doc Document) Result {
	result := Result{Kind: KindMandate, Path: doc.Path}

	if doc.Err != nil {
		result.Status = StatusUnreadable
		result.Reason, result.Cause = sourceFailure(doc.Err)
		return result
	}

	result.Errors = verrors.Messages(r.validator.ValidateMandate(doc.Value))
	result.Status = statusFor(result.Errors)
	return result
}

func (r *Reporter) evaluateLedger(doc Document) Result {
	result := Result{Kind: KindLedger, Path: doc.Path}

	if doc.Err != nil {
		reason, cause := sourceFailure(doc.Err)
		if reason == verrors.SourceMissing {
			result.Status = StatusSkipped
			return result
		}
		result.Status = StatusUnreadable
		result.Reason, result.Cause = reason, cause
		return result
	}

	result.Errors = verrors.Messages(r.validator.ValidateLedger(doc.Value))
	result.Status = statusFor(result.Errors)
	if result.Status == StatusValid {
		result.Entries = validator.EntryCount(doc.Value)
	}
	return result
}

// sourceFailure classifies a load error. Errors that are not a SourceError
// are treated as unreadable.
func sourceFailure(err error) (verrors.SourceReason, string) {
	var srcErr *verrors.SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Reason, srcErr.Cause()
	}
	return verrors.SourceUnreadable, err.Error()
}

func statusFor(errs []string) Status {
	if len(errs) > 0 {
		return StatusInvalid
	}
	return StatusValid
}
