package history

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moltaidev/usdc-mandate/pkg/report"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(&SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "nested", "history.db"),
		BusyTimeout: time.Second,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(id string, startedAt time.Time, passed bool) *Record {
	r := &Record{
		ID:            id,
		Workspace:     "/ws",
		StartedAt:     startedAt,
		DurationMs:    3,
		Passed:        passed,
		MandateStatus: report.StatusValid,
		LedgerStatus:  report.StatusSkipped,
	}
	if !passed {
		r.MandateStatus = report.StatusInvalid
		r.ErrorCount = 1
		r.Errors = []string{"Missing required field: period"}
	}
	return r
}

// stores runs each subtest against every Store implementation.
func stores(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store { return newTestSQLiteStore(t) },
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, store.Save(ctx, testRecord("run-1", started, false)))

			got, err := store.Get(ctx, "run-1")
			require.NoError(t, err)
			assert.Equal(t, "/ws", got.Workspace)
			assert.True(t, got.StartedAt.Equal(started))
			assert.False(t, got.Passed)
			assert.Equal(t, report.StatusInvalid, got.MandateStatus)
			assert.Equal(t, report.StatusSkipped, got.LedgerStatus)
			assert.Equal(t, []string{"Missing required field: period"}, got.Errors)

			_, err = store.Get(ctx, "missing")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestStore_SaveAssignsID(t *testing.T) {
	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			record := testRecord("", time.Now(), true)

			require.NoError(t, store.Save(context.Background(), record))
			assert.Len(t, record.ID, 36)
		})
	}
}

func TestStore_List(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	passed, failed := true, false

	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			for i := 0; i < 5; i++ {
				r := testRecord(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour), i%2 == 0)
				if i == 4 {
					r.Workspace = "/other"
				}
				require.NoError(t, store.Save(ctx, r))
			}

			all, err := store.List(ctx, nil)
			require.NoError(t, err)
			require.Len(t, all, 5)
			assert.Equal(t, "e", all[0].ID, "newest first")
			assert.Equal(t, "a", all[4].ID)

			limited, err := store.List(ctx, &Query{Limit: 2})
			require.NoError(t, err)
			assert.Len(t, limited, 2)

			onlyPassed, err := store.List(ctx, &Query{Passed: &passed})
			require.NoError(t, err)
			assert.Len(t, onlyPassed, 3)

			onlyFailed, err := store.List(ctx, &Query{Passed: &failed})
			require.NoError(t, err)
			assert.Len(t, onlyFailed, 2)

			ws, err := store.List(ctx, &Query{Workspace: "/other"})
			require.NoError(t, err)
			require.Len(t, ws, 1)
			assert.Equal(t, "e", ws[0].ID)

			since, err := store.List(ctx, &Query{Since: base.Add(3 * time.Hour)})
			require.NoError(t, err)
			assert.Len(t, since, 2)
		})
	}
}

func TestStore_Cleanup(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			for i := 0; i < 4; i++ {
				require.NoError(t, store.Save(ctx, testRecord(string(rune('a'+i)), base.AddDate(0, 0, i), true)))
			}

			n, err := store.Cleanup(ctx, base.AddDate(0, 0, 2))
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			rest, err := store.List(ctx, nil)
			require.NoError(t, err)
			assert.Len(t, rest, 2)

			n, err = store.Cleanup(ctx, base)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(&SQLiteConfig{Path: path}, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testRecord("persisted", time.Now(), true)))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "close is idempotent")

	store, err = NewSQLiteStore(&SQLiteConfig{Path: path}, nil)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, "persisted")
	require.NoError(t, err)
	assert.True(t, got.Passed)
}

func TestSQLiteStore_Ping(t *testing.T) {
	store := newTestSQLiteStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	require.NoError(t, store.Close())
	assert.Error(t, store.Ping(context.Background()))
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore(&SQLiteConfig{}, nil)
	require.Error(t, err)

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "sqlite", storageErr.Backend)
	assert.Equal(t, "open", storageErr.Operation)
}

func TestSQLiteStore_ConcurrentSaves(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Save(ctx, testRecord("", time.Now(), true)))
		}()
	}
	wg.Wait()

	records, err := store.List(ctx, &Query{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestRecordFromReport(t *testing.T) {
	started := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rep := &report.Report{
		RunID:     "run-42",
		Workspace: "/ws",
		Mandate:   report.Result{Kind: report.KindMandate, Status: report.StatusValid},
		Ledger: &report.Result{
			Kind:   report.KindLedger,
			Status: report.StatusInvalid,
			Errors: []string{"Ledger[0]: must be object"},
		},
		StartedAt: started,
		Duration:  1500 * time.Millisecond,
	}

	r := RecordFromReport(rep)
	assert.Equal(t, "run-42", r.ID)
	assert.Equal(t, int64(1500), r.DurationMs)
	assert.False(t, r.Passed)
	assert.Equal(t, report.StatusValid, r.MandateStatus)
	assert.Equal(t, report.StatusInvalid, r.LedgerStatus)
	assert.Equal(t, 1, r.ErrorCount)
	assert.Equal(t, []string{"Ledger[0]: must be object"}, r.Errors)
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("sqlite", "save", cause)

	assert.Equal(t, "history storage error [backend=sqlite, operation=save]: disk full", err.Error())
	assert.True(t, errors.Is(err, cause))
}
