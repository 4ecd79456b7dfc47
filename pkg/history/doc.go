// Package history records mandate check runs.
//
// Every check run can be stored as a Record so that operators can see when
// a mandate or ledger started failing. The SQLite store is the only
// persistent backend; the memory store exists for tests and for running
// watch mode without a database.
//
// # Basic Usage
//
//	store, err := history.NewSQLiteStore(&history.SQLiteConfig{
//	    Path:        "data/mandate-history.db",
//	    BusyTimeout: 5 * time.Second,
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	if err := store.Save(ctx, history.RecordFromReport(rep)); err != nil {
//	    logger.Warn("failed to record run", "error", err)
//	}
//
//	records, err := store.List(ctx, &history.Query{Limit: 20})
package history
