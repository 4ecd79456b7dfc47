package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/moltaidev/usdc-mandate/pkg/report"
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the database file path. Parent directories are created.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/mandate-history.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	config    *SQLiteConfig
	logger    *slog.Logger
	closeOnce sync.Once
}

// NewSQLiteStore opens (creating if needed) the history database.
// A nil logger uses slog.Default.
func NewSQLiteStore(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Path == "" {
		return nil, NewStorageError("sqlite", "open", errors.New("db path cannot be empty"))
	}
	if config.BusyTimeout == 0 {
		config.BusyTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "history.sqlite")

	if dir := filepath.Dir(config.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError("sqlite", "create_dir", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		config.Path, config.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("history store opened", "path", config.Path)

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version sql.NullInt64
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if !version.Valid || version.Int64 != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version.Int64))
	}

	return nil
}

// Save persists a record, replacing any record with the same ID.
func (s *SQLiteStore) Save(ctx context.Context, record *Record) error {
	ensureID(record)

	errs := record.Errors
	if errs == nil {
		errs = []string{}
	}
	errorsJSON, err := json.Marshal(errs)
	if err != nil {
		return NewStorageError("sqlite", "marshal_errors", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (
			id, workspace, started_at, duration_ms, passed, aborted,
			mandate_status, ledger_status, error_count, errors
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Workspace,
		record.StartedAt.UnixNano(),
		record.DurationMs,
		boolToInt(record.Passed),
		boolToInt(record.Aborted),
		string(record.MandateStatus),
		string(record.LedgerStatus),
		record.ErrorCount,
		string(errorsJSON),
	)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}

	s.logger.Debug("run recorded", "id", record.ID, "passed", record.Passed)
	return nil
}

const selectColumns = `id, workspace, started_at, duration_ms, passed, aborted,
	mandate_status, ledger_status, error_count, errors`

// Get returns the record with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM runs WHERE id = ?`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "get", err)
	}
	return record, nil
}

// List returns records matching the query, newest first.
func (s *SQLiteStore) List(ctx context.Context, query *Query) ([]*Record, error) {
	var (
		conditions []string
		args       []any
	)

	if query != nil {
		if query.Workspace != "" {
			conditions = append(conditions, "workspace = ?")
			args = append(args, query.Workspace)
		}
		if query.Passed != nil {
			conditions = append(conditions, "passed = ?")
			args = append(args, boolToInt(*query.Passed))
		}
		if !query.Since.IsZero() {
			conditions = append(conditions, "started_at >= ?")
			args = append(args, query.Since.UnixNano())
		}
	}

	stmt := `SELECT ` + selectColumns + ` FROM runs`
	if len(conditions) > 0 {
		stmt += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	stmt += ` ORDER BY started_at DESC, id LIMIT ?`
	args = append(args, query.limit())

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}

	return records, nil
}

// Cleanup deletes records started before olderThan.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, olderThan.UnixNano())
	if err != nil {
		return 0, NewStorageError("sqlite", "cleanup", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "cleanup", err)
	}

	if n > 0 {
		s.logger.Info("history cleaned up", "deleted", n, "older_than", olderThan)
	}
	return int(n), nil
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.db.Close()
	})
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		record        Record
		startedAt     int64
		passed        int
		aborted       int
		mandateStatus string
		ledgerStatus  string
		errorsJSON    string
	)

	if err := row.Scan(
		&record.ID,
		&record.Workspace,
		&startedAt,
		&record.DurationMs,
		&passed,
		&aborted,
		&mandateStatus,
		&ledgerStatus,
		&record.ErrorCount,
		&errorsJSON,
	); err != nil {
		return nil, err
	}

	record.StartedAt = time.Unix(0, startedAt).UTC()
	record.Passed = passed != 0
	record.Aborted = aborted != 0
	record.MandateStatus = report.Status(mandateStatus)
	record.LedgerStatus = report.Status(ledgerStatus)

	if err := json.Unmarshal([]byte(errorsJSON), &record.Errors); err != nil {
		return nil, fmt.Errorf("decode errors column: %w", err)
	}
	if len(record.Errors) == 0 {
		record.Errors = nil
	}

	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
