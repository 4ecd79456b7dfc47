package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/moltaidev/usdc-mandate/pkg/cli"
	"github.com/moltaidev/usdc-mandate/pkg/mandate"
	"github.com/moltaidev/usdc-mandate/pkg/report"
)

var usageFlags struct {
	at string
}

var usageCmd = &cobra.Command{
	Use:   "usage [workspace]",
	Short: "Show spending in the current mandate period",
	Long: `Show how much of the mandate's limit the ledger has spent in the current
period. Both documents must be valid; otherwise the validation report is
printed and the command fails.

Examples:
  # Current period
  mandate-check usage ./agent

  # Period containing a given date
  mandate-check usage ./agent --at 2026-03-15`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)

	usageCmd.Flags().StringVar(&usageFlags.at, "at", "", "evaluate at this time (RFC3339 or YYYY-MM-DD; default now)")
}

// usageView is the JSON form of a period usage summary. Amounts are
// decimal strings so no precision is lost.
type usageView struct {
	Workspace      string    `json:"workspace"`
	Period         string    `json:"period"`
	WindowStart    time.Time `json:"window_start"`
	WindowEnd      time.Time `json:"window_end"`
	Limit          string    `json:"limit"`
	Spent          string    `json:"spent"`
	Remaining      string    `json:"remaining"`
	Percentage     float64   `json:"percentage"`
	Entries        int       `json:"entries"`
	Skipped        int       `json:"skipped"`
	Exceeded       bool      `json:"exceeded"`
	AlertTriggered bool      `json:"alert_triggered"`
}

func newUsageView(dir string, s *mandate.Status) usageView {
	return usageView{
		Workspace:      dir,
		Period:         string(s.Period),
		WindowStart:    s.WindowStart,
		WindowEnd:      s.WindowEnd,
		Limit:          s.Limit.String(),
		Spent:          s.Spent.String(),
		Remaining:      s.Remaining.String(),
		Percentage:     s.Percentage,
		Entries:        s.Entries,
		Skipped:        s.Skipped,
		Exceeded:       s.Exceeded,
		AlertTriggered: s.AlertTriggered,
	}
}

func runUsage(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	now := a.now()
	if usageFlags.at != "" {
		now, err = mandate.ParseDate(usageFlags.at)
		if err != nil {
			return cli.NewConfigError("--at", err.Error())
		}
	}

	dir, err := a.workspaceDir(args)
	if err != nil {
		return err
	}

	mandateDoc, ledgerDoc := a.load(dir)
	rep := report.NewReporter(report.WithClock(a.now), report.WithWorkspace(dir)).Run(mandateDoc, ledgerDoc)
	if !rep.Passed {
		report.Print(a.stdout, a.stderr, rep)
		return cli.ErrCheckFailed
	}

	status, err := usageFor(mandateDoc, ledgerDoc, rep, now, a.alertThreshold())
	if err != nil {
		return cli.NewCommandError("usage", err)
	}

	if a.format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(a.stdout, newUsageView(dir, status))
	}
	printUsage(a.stdout, status)
	return nil
}

func printUsage(w io.Writer, s *mandate.Status) {
	fmt.Fprintf(w, "Period: %s (%s to %s)\n", s.Period,
		s.WindowStart.Format(time.RFC3339), s.WindowEnd.Format(time.RFC3339))
	fmt.Fprintf(w, "Limit: %s USDC\n", s.Limit.String())
	fmt.Fprintf(w, "Spent: %s USDC (%.1f%%)\n", s.Spent.String(), s.Percentage*100)
	fmt.Fprintf(w, "Remaining: %s USDC\n", s.Remaining.String())
	fmt.Fprintf(w, "Entries: %d counted, %d skipped\n", s.Entries, s.Skipped)

	switch {
	case s.Exceeded:
		fmt.Fprintln(w, "Status: EXCEEDED")
	case s.AlertTriggered:
		fmt.Fprintln(w, "Status: ALERT")
	default:
		fmt.Fprintln(w, "Status: OK")
	}
}
