package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/moltaidev/usdc-mandate/pkg/cli"
)

var (
	// Global flags
	cfgFile      string
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "mandate-check [workspace]",
	Short: "Validate a USDC spending mandate and its ledger",
	Long: `mandate-check validates the spending mandate (.usdc-mandate.json) and the
optional transaction ledger (.usdc-mandate-ledger.json) of a workspace.

The mandate must declare maxAmountPerPeriod, period (day, week or month) and
periodStart. The ledger, when present, must be an array of entries with a
non-negative amount and a string timestamp.

The workspace is the first of: the argument, workspace.path in the config
file, $OPENCLAW_WORKSPACE, and ~/.openclaw/workspace.

Exit status is 0 when every document is valid and 1 otherwise.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runCheck,
	SilenceErrors: true,
	SilenceUsage:  true,
	Version:       Version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: ./mandate-check.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", "", "output format: text, json; history also accepts csv (default from config)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := executeContext(ctx)
	if err != nil && !cli.IsSilent(err) {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}

// executeContext runs rootCmd with ctx. cobra only hands the root context to
// subcommands whose own context is nil, so every command in the tree is
// reset before each run.
func executeContext(ctx context.Context) error {
	setContext(rootCmd, ctx)
	return rootCmd.ExecuteContext(ctx)
}

func setContext(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	for _, sub := range cmd.Commands() {
		setContext(sub, ctx)
	}
}
