// Package logging provides structured logging with wallet address redaction.
//
// # Overview
//
// The logging package wraps log/slog to provide:
//   - JSON and text formats written to stderr, leaving stdout to the report
//   - Redaction of 0x recipient addresses and private keys in log fields
//   - Context-aware logging with run IDs and the workspace directory
//
// # Usage
//
//	logger, err := logging.New(logging.ConfigFrom(cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithRunID(ctx, rep.RunID)
//	logger.InfoContext(ctx, "check finished", "passed", rep.Passed)
//
// # Redaction
//
//   - Addresses: 0x52908400098527886E0F7030069857D2E4169EE7 → 0x5290...9EE7
//   - Private keys (64 hex digits): → 0x***
//   - Values under keys containing "secret", "token", "private_key": → ***
package logging
