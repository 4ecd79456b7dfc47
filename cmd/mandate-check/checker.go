package main

import (
	"context"
	"fmt"
	"time"

	"github.com/moltaidev/usdc-mandate/pkg/cli"
	"github.com/moltaidev/usdc-mandate/pkg/history"
	"github.com/moltaidev/usdc-mandate/pkg/mandate"
	"github.com/moltaidev/usdc-mandate/pkg/report"
	"github.com/moltaidev/usdc-mandate/pkg/telemetry/logging"
	"github.com/moltaidev/usdc-mandate/pkg/telemetry/metrics"
)

// checker runs checks against one workspace and fans the report out to
// the configured sinks.
type checker struct {
	app      *app
	dir      string
	reporter *report.Reporter
	logger   *logging.Logger

	// Optional sinks; nil when disabled.
	store     history.Store
	collector *metrics.Collector
	textfile  string
}

// newChecker wires the history store and metrics collector from config.
func newChecker(a *app, dir string) (*checker, error) {
	c := &checker{
		app:      a,
		dir:      dir,
		reporter: report.NewReporter(report.WithClock(a.now), report.WithWorkspace(dir)),
		logger:   a.logger.WithComponent("checker"),
	}

	if a.cfg.History.Enabled {
		store, err := history.NewSQLiteStore(&history.SQLiteConfig{
			Path:        a.cfg.History.Path,
			BusyTimeout: a.cfg.History.BusyTimeout,
		}, a.logger.Slog())
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		c.store = store
	}

	if a.cfg.Metrics.Enabled {
		metricsCfg := a.cfg.Metrics
		c.collector = metrics.NewCollector(&metricsCfg, nil)
		c.textfile = a.cfg.Metrics.TextfilePath
	}

	return c, nil
}

// Close releases the history store.
func (c *checker) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Check loads, validates and reports the workspace documents. It returns
// cli.ErrCheckFailed when the run did not pass.
func (c *checker) Check(ctx context.Context, trigger string) (*report.Report, error) {
	mandateDoc, ledgerDoc := c.app.load(c.dir)
	rep := c.reporter.Run(mandateDoc, ledgerDoc)

	ctx = logging.WithRunID(ctx, rep.RunID)
	ctx = logging.WithWorkspace(ctx, c.dir)
	ctx = logging.WithTrigger(ctx, trigger)

	c.logger.DebugContext(ctx, "check completed",
		"passed", rep.Passed,
		"aborted", rep.Aborted,
		"errors", rep.ErrorCount(),
		"duration", rep.Duration,
	)

	if err := c.write(rep); err != nil {
		return rep, fmt.Errorf("failed to write report: %w", err)
	}

	c.record(ctx, rep)
	c.recordMetrics(ctx, rep, mandateDoc, ledgerDoc)

	if !rep.Passed {
		return rep, cli.ErrCheckFailed
	}
	return rep, nil
}

func (c *checker) write(rep *report.Report) error {
	if c.app.format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(c.app.stdout, rep)
	}
	report.Print(c.app.stdout, c.app.stderr, rep)
	return nil
}

// record stores the run. Failures are logged and never fail the check.
func (c *checker) record(ctx context.Context, rep *report.Report) {
	if c.store == nil {
		return
	}
	if err := c.store.Save(ctx, history.RecordFromReport(rep)); err != nil {
		c.logger.WarnContext(ctx, "failed to record run", "error", err)
	}
}

// recordMetrics updates the collector and rewrites the textfile.
func (c *checker) recordMetrics(ctx context.Context, rep *report.Report, mandateDoc, ledgerDoc report.Document) {
	if c.collector == nil {
		return
	}

	c.collector.RecordRun(rep)

	if rep.Passed {
		status, err := usageFor(mandateDoc, ledgerDoc, rep, c.app.now(), c.app.alertThreshold())
		if err != nil {
			c.logger.WarnContext(ctx, "failed to compute period usage", "error", err)
		} else {
			c.collector.RecordUsage(status)
		}
	}

	if c.textfile == "" {
		return
	}
	if err := c.collector.WriteTextfile(c.textfile); err != nil {
		c.logger.WarnContext(ctx, "failed to write metrics", "error", err)
	}
}

// usageFor computes the period usage of documents that passed validation.
// A skipped ledger counts as no spending.
func usageFor(mandateDoc, ledgerDoc report.Document, rep *report.Report, now time.Time, alertThreshold float64) (*mandate.Status, error) {
	m, err := mandate.FromValue(mandateDoc.Value)
	if err != nil {
		return nil, err
	}

	var entries []mandate.LedgerEntry
	if rep.Ledger != nil && rep.Ledger.Status == report.StatusValid {
		entries, err = mandate.EntriesFromValue(ledgerDoc.Value)
		if err != nil {
			return nil, err
		}
	}

	return mandate.Usage(m, entries, now, alertThreshold)
}
