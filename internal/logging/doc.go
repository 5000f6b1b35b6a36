// Package logging provides structured logging for the smpctl tools.
//
// This package wraps zap with convenience functions for common logging
// patterns used throughout the tools. Decoded response output for the user
// goes to stdout untouched; log lines go to stderr so they never interleave
// with record output.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (request/response hex, length resolution)
//   - Info: Normal operations (device opened, traversal progress)
//   - Warn: Non-fatal issues (malformed response, phy id mismatch)
//   - Error: Fatal issues (device open failure, transport errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Warn("discover failed",
//	    zap.Int("phy_id", 12),
//	    zap.String("result", "phy vacant"),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is given, the SMPCTL_LOG_LEVEL environment variable is
// consulted; when that is also unset, logging is silent. Silent mode is
// the default for the CLI so that output stays pipeable.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
