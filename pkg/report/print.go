package report

import (
	"fmt"
	"io"
	"strings"

	verrors "github.com/moltaidev/usdc-mandate/pkg/schema/errors"
)

// Print writes the human-readable report. Success lines and the missing
// ledger notice go to stdout, everything else to stderr. The mandate line
// always precedes the ledger line.
func Print(stdout, stderr io.Writer, r *Report) {
	printMandate(stdout, stderr, &r.Mandate)
	if r.Ledger != nil {
		printLedger(stdout, stderr, r.Ledger)
	}
}

func printMandate(stdout, stderr io.Writer, res *Result) {
	switch res.Status {
	case StatusUnreadable:
		if res.Reason == verrors.SourceMissing {
			fmt.Fprintln(stderr, "Missing:", res.Path)
			return
		}
		fmt.Fprintln(stderr, "Invalid JSON:", res.Path, res.Cause)
	case StatusInvalid:
		fmt.Fprintln(stderr, "Mandate errors:", strings.Join(res.Errors, "; "))
	default:
		fmt.Fprintln(stdout, "Mandate OK:", res.Path)
	}
}

func printLedger(stdout, stderr io.Writer, res *Result) {
	switch res.Status {
	case StatusSkipped:
		fmt.Fprintln(stdout, "Ledger missing (optional):", res.Path)
	case StatusUnreadable:
		fmt.Fprintln(stderr, "Invalid ledger JSON:", res.Path, res.Cause)
	case StatusInvalid:
		fmt.Fprintln(stderr, "Ledger errors:", strings.Join(res.Errors, "; "))
	default:
		fmt.Fprintf(stdout, "Ledger OK: %s (%d entries)\n", res.Path, res.Entries)
	}
}
