package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moltaidev/usdc-mandate/pkg/report"
)

// DefaultListLimit is the number of records List returns when no limit is set.
const DefaultListLimit = 20

// ErrNotFound is returned by Get when no record has the given ID.
var ErrNotFound = errors.New("history record not found")

// Record is one stored check run.
type Record struct {
	ID            string        `json:"id"`
	Workspace     string        `json:"workspace"`
	StartedAt     time.Time     `json:"started_at"`
	DurationMs    int64         `json:"duration_ms"`
	Passed        bool          `json:"passed"`
	Aborted       bool          `json:"aborted"`
	MandateStatus report.Status `json:"mandate_status"`
	LedgerStatus  report.Status `json:"ledger_status,omitempty"`
	ErrorCount    int           `json:"error_count"`
	Errors        []string      `json:"errors,omitempty"`
}

// RecordFromReport converts a run report into a history record.
func RecordFromReport(rep *report.Report) *Record {
	return &Record{
		ID:            rep.RunID,
		Workspace:     rep.Workspace,
		StartedAt:     rep.StartedAt,
		DurationMs:    rep.Duration.Milliseconds(),
		Passed:        rep.Passed,
		Aborted:       rep.Aborted,
		MandateStatus: rep.Mandate.Status,
		LedgerStatus:  rep.LedgerStatus(),
		ErrorCount:    rep.ErrorCount(),
		Errors:        rep.Errors(),
	}
}

// Query filters history records. Zero values mean "no filter".
type Query struct {
	// Workspace restricts results to one workspace directory.
	Workspace string

	// Passed restricts results to passed (true) or failed (false) runs.
	Passed *bool

	// Since restricts results to runs started at or after this time.
	Since time.Time

	// Limit caps the number of records returned, newest first.
	Limit int
}

func (q *Query) limit() int {
	if q == nil || q.Limit <= 0 {
		return DefaultListLimit
	}
	return q.Limit
}

// Store persists check run records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save persists a record. A record without an ID is given a new UUID.
	Save(ctx context.Context, record *Record) error

	// Get returns the record with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records matching the query, newest first.
	List(ctx context.Context, query *Query) ([]*Record, error)

	// Cleanup deletes records started before olderThan and returns how many
	// were removed.
	Cleanup(ctx context.Context, olderThan time.Time) (int, error)

	// Close releases the store's resources.
	Close() error
}

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // Storage backend type ("sqlite", "memory")
	Operation string // Operation that failed ("save", "list", "cleanup", ...)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("history storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// ensureID assigns a new UUID to a record without one.
func ensureID(record *Record) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
}
