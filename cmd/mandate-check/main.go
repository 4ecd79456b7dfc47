// mandate-check validates a USDC spending mandate and its optional ledger.
//
// The mandate (.usdc-mandate.json) and ledger (.usdc-mandate-ledger.json)
// live in a workspace directory. The workspace is the first of: the command
// argument, workspace.path from the config file, $OPENCLAW_WORKSPACE, and
// ~/.openclaw/workspace.
//
// Usage:
//
//	# Check the default workspace
//	mandate-check
//
//	# Check a specific workspace, JSON report
//	mandate-check ./agent --format json
//
//	# Show spending in the current period
//	mandate-check usage ./agent
//
//	# Re-check on every change and every 5 minutes
//	mandate-check watch ./agent --schedule "*/5 * * * *"
//
//	# List recorded runs
//	mandate-check history --limit 10
//
// The exit status is 0 when the check passes and 1 otherwise.
package main

import "os"

func main() {
	os.Exit(Execute())
}
