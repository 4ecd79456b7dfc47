package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/moltaidev/usdc-mandate/pkg/config"
	"github.com/moltaidev/usdc-mandate/pkg/history"
	"github.com/moltaidev/usdc-mandate/pkg/telemetry/health"
	"github.com/moltaidev/usdc-mandate/pkg/watch"
)

var watchFlags struct {
	schedule    string
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch [workspace]",
	Short: "Re-run the check when documents change or on a schedule",
	Long: `Run the check once, then again whenever the mandate or ledger file changes
and, if a schedule is set, on every cron tick. Runs never overlap. Failed
checks are reported and watching continues. Stop with Ctrl-C.

Changes to the config file are picked up while watching: the new
usage.alert_threshold applies from the next check. Other settings need a
restart. An invalid config file is logged and the previous one is kept.

When history is enabled, records older than history.retention_days are
cleaned up daily. With --metrics-addr the process also serves Prometheus
metrics and health probes; /ready fails while the latest check fails.

Examples:
  # Watch files only
  mandate-check watch ./agent

  # Also re-check every 5 minutes and expose metrics
  mandate-check watch ./agent --schedule "*/5 * * * *" --metrics-addr :9464`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron expression for periodic checks (default from config)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve /metrics, /health, /ready and /version on this address")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	dir, err := a.workspaceDir(args)
	if err != nil {
		return err
	}

	writeTextfile := a.cfg.Metrics.Enabled
	if watchFlags.metricsAddr != "" {
		a.cfg.Metrics.Enabled = true
	}

	c, err := newChecker(a, dir)
	if err != nil {
		return err
	}
	defer c.Close()

	// --metrics-addr alone serves HTTP without touching the textfile.
	if !writeTextfile {
		c.textfile = ""
	}

	ctx := cmd.Context()
	logger := a.logger.WithComponent("watch")

	runner := watch.NewRunner(func(ctx context.Context, trigger watch.Trigger) error {
		_, err := c.Check(ctx, string(trigger))
		return err
	}, logger.Slog())

	schedule := a.cfg.Watch.Schedule
	if watchFlags.schedule != "" {
		schedule = watchFlags.schedule
	}

	scheduler := watch.NewScheduler(logger.Slog())
	if schedule != "" {
		if err := scheduler.Add("check", schedule, runner.Trigger(watch.TriggerSchedule)); err != nil {
			return err
		}
	}
	if c.store != nil && a.cfg.History.RetentionDays > 0 {
		retention := time.Duration(a.cfg.History.RetentionDays) * 24 * time.Hour
		if err := scheduler.Add("history-cleanup", "@daily", func(ctx context.Context) {
			if _, err := c.store.Cleanup(ctx, a.now().Add(-retention)); err != nil {
				logger.Warn("history cleanup failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	fw, err := watch.NewFileWatcher(&watch.FileWatcherConfig{
		Dir:              dir,
		Names:            []string{a.layout().MandateFile, a.layout().LedgerFile},
		DebounceInterval: a.cfg.Watch.Debounce,
	}, logger.Slog())
	if err != nil {
		return err
	}

	var cfgWatcher *watch.FileWatcher
	cfgPath := a.configPath()
	if cfgPath != "" {
		abs, err := filepath.Abs(cfgPath)
		if err != nil {
			fw.Close()
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
		cfgPath = abs
		cfgWatcher, err = watch.NewFileWatcher(&watch.FileWatcherConfig{
			Dir:              filepath.Dir(abs),
			Names:            []string{filepath.Base(abs)},
			DebounceInterval: a.cfg.Watch.Debounce,
		}, logger.Slog())
		if err != nil {
			fw.Close()
			return err
		}
	}

	_ = runner.Run(ctx, watch.TriggerStartup)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return fw.Watch(ctx, runner.Trigger(watch.TriggerFile))
	})

	if cfgWatcher != nil {
		g.Go(func() error {
			return cfgWatcher.Watch(ctx, func(ctx context.Context) {
				if _, err := config.ReloadConfig(cfgPath); err != nil {
					logger.Warn("keeping previous configuration", "path", cfgPath, "error", err)
					return
				}
				logger.Info("configuration reloaded", "path", cfgPath)
				_ = runner.Run(ctx, watch.TriggerConfig)
			})
		})
	}

	scheduler.Start(ctx)

	if watchFlags.metricsAddr != "" {
		mux := http.NewServeMux()
		health.Mount(mux, newHealthChecker(c, runner), Version, GitCommit, BuildDate)

		g.Go(func() error {
			logger.Info("serving metrics and health", "addr", watchFlags.metricsAddr)
			return c.collector.Serve(ctx, watchFlags.metricsAddr, mux)
		})
	}

	err = g.Wait()
	scheduler.Stop()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newHealthChecker reports ready while the latest check passed and the
// history database, if any, answers.
func newHealthChecker(c *checker, runner *watch.Runner) *health.Checker {
	checker := health.New(2 * time.Second)
	checker.RegisterCheck("last_check", func(context.Context) error {
		return runner.LastError()
	})
	if store, ok := c.store.(*history.SQLiteStore); ok {
		checker.RegisterCheck("history", store.Ping)
	}
	return checker
}
