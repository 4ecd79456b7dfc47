// Package report combines the mandate and ledger validation outcomes into a
// single run report and renders it.
//
// # Run Semantics
//
// A mandate that cannot be loaded aborts the run: the ledger is not looked
// at. A mandate with schema errors fails the run but the ledger is still
// validated so that both sets of problems are reported together. A missing
// ledger is optional and never affects the outcome; a ledger that exists but
// cannot be loaded or validated fails the run.
//
// # Usage
//
//	r := report.NewReporter()
//	rep := r.Run(workspace.Load(report.KindMandate, mandatePath),
//	    workspace.Load(report.KindLedger, ledgerPath))
//	report.Print(os.Stdout, os.Stderr, rep)
//	os.Exit(report.ExitCode(rep))
package report
