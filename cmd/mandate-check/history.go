package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moltaidev/usdc-mandate/pkg/cli"
	"github.com/moltaidev/usdc-mandate/pkg/history"
	"github.com/moltaidev/usdc-mandate/pkg/mandate"
	"github.com/moltaidev/usdc-mandate/pkg/workspace"
)

var historyFlags struct {
	limit     int
	failed    bool
	workspace string
	since     string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded check runs",
	Long: `List check runs recorded in the history database, newest first.
Recording is enabled with history.enabled in the config file or
MANDATE_HISTORY_ENABLED=true.

Examples:
  # Last 10 runs
  mandate-check history --limit 10

  # Failed runs of one workspace as CSV
  mandate-check history --failed --workspace ./agent --format csv`,
	Args: cobra.NoArgs,
	RunE: listHistory,
}

var historyCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete runs older than history.retention_days",
	Args:  cobra.NoArgs,
	RunE:  cleanupHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyCleanupCmd)

	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", history.DefaultListLimit, "maximum number of runs to show")
	historyCmd.Flags().BoolVar(&historyFlags.failed, "failed", false, "only show failed runs")
	historyCmd.Flags().StringVar(&historyFlags.workspace, "workspace", "", "only show runs of this workspace")
	historyCmd.Flags().StringVar(&historyFlags.since, "since", "", "only show runs since this time (RFC3339 or YYYY-MM-DD)")
}

func openHistory(a *app) (*history.SQLiteStore, error) {
	if !workspace.Exists(a.cfg.History.Path) {
		return nil, cli.NewConfigError("history.path",
			fmt.Sprintf("no history database at %s (is history.enabled set?)", a.cfg.History.Path))
	}
	return history.NewSQLiteStore(&history.SQLiteConfig{
		Path:        a.cfg.History.Path,
		BusyTimeout: a.cfg.History.BusyTimeout,
	}, a.logger.Slog())
}

func listHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}

	query := &history.Query{
		Workspace: historyFlags.workspace,
		Limit:     historyFlags.limit,
	}
	if historyFlags.failed {
		passed := false
		query.Passed = &passed
	}
	if historyFlags.since != "" {
		since, err := mandate.ParseDate(historyFlags.since)
		if err != nil {
			return cli.NewConfigError("--since", err.Error())
		}
		query.Since = since
	}

	store, err := openHistory(a)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	switch a.format {
	case cli.FormatJSON:
		if records == nil {
			records = []*history.Record{}
		}
		return cli.NewFormatter(cli.FormatJSON).FormatTo(a.stdout, records)
	case cli.FormatCSV:
		return cli.NewFormatter(cli.FormatCSV).FormatTo(a.stdout, historyTable(records))
	default:
		printHistory(a.stdout, records)
		return nil
	}
}

func cleanupHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if a.cfg.History.RetentionDays < 0 {
		fmt.Fprintln(a.stdout, "Retention disabled (history.retention_days < 0), nothing deleted")
		return nil
	}

	store, err := openHistory(a)
	if err != nil {
		return err
	}
	defer store.Close()

	cutoff := a.now().AddDate(0, 0, -a.cfg.History.RetentionDays)
	deleted, err := store.Cleanup(cmd.Context(), cutoff)
	if err != nil {
		return cli.NewCommandError("history cleanup", err)
	}

	fmt.Fprintf(a.stdout, "Deleted %d runs older than %s\n", deleted, cutoff.Format(time.RFC3339))
	return nil
}

func printHistory(w io.Writer, records []*history.Record) {
	fmt.Fprintf(w, "Total runs: %d\n", len(records))

	for _, r := range records {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Run ID: %s\n", r.ID)
		fmt.Fprintf(w, "Started: %s (%dms)\n", r.StartedAt.Format(time.RFC3339), r.DurationMs)
		fmt.Fprintf(w, "Workspace: %s\n", r.Workspace)
		fmt.Fprintf(w, "Result: %s\n", resultLabel(r))

		ledger := string(r.LedgerStatus)
		if ledger == "" {
			ledger = "not checked"
		}
		fmt.Fprintf(w, "Mandate: %s, Ledger: %s\n", r.MandateStatus, ledger)

		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
}

func resultLabel(r *history.Record) string {
	switch {
	case r.Aborted:
		return "aborted"
	case r.Passed:
		return "passed"
	default:
		return "failed"
	}
}

// historyTable renders records as CSV rows.
type historyTable []*history.Record

func (t historyTable) Header() []string {
	return []string{"id", "started_at", "workspace", "result", "mandate", "ledger", "error_count", "errors"}
}

func (t historyTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Format(time.RFC3339),
			r.Workspace,
			resultLabel(r),
			string(r.MandateStatus),
			string(r.LedgerStatus),
			strconv.Itoa(r.ErrorCount),
			strings.Join(r.Errors, "; "),
		})
	}
	return rows
}
