/*
Package cli provides command-line helpers for the mandate-check command.

Output Formatting:

Command results can be rendered as text, JSON, or CSV:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, rep); err != nil {
		return err
	}

CSV output needs data that implements Table.

Errors:

A check that completed but did not pass returns ErrCheckFailed. The process
boundary maps it to exit status 1 without printing anything else, since the
report already explained the failure.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
