package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [workspace]",
	Short: "Validate the mandate and ledger (same as the root command)",
	Long: `Validate the workspace mandate and its optional ledger.

Examples:
  # Check the default workspace
  mandate-check check

  # JSON report for CI
  mandate-check check ./agent --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	dir, err := a.workspaceDir(args)
	if err != nil {
		return err
	}

	c, err := newChecker(a, dir)
	if err != nil {
		return err
	}
	defer c.Close()

	_, err = c.Check(cmd.Context(), "cli")
	return err
}
