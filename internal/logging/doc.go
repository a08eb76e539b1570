// Package logging provides structured logging for termask.
//
// This package wraps a zap logger with convenience functions for the
// logging patterns used by the prompts, the form runner and the remote
// session server.
//
// # Silent By Default
//
// Prompts own the terminal while they run, so any log line written to the
// same screen would corrupt the rendering. Logging is therefore disabled
// unless the TERMASK_LOG_LEVEL environment variable (or an explicit level)
// is set, and output goes to stderr or to the file named by
// TERMASK_LOG_FILE:
//
//	TERMASK_LOG_LEVEL=debug TERMASK_LOG_FILE=/tmp/termask.log termask run form.yaml
//
// # Log Levels
//
//   - Debug: key events, validation rejections, repaint decisions
//   - Info: answers accepted, remote sessions opened and closed
//   - Warn: recoverable remote protocol problems
//   - Error: fatal device or server failures
//
// # Specialized Logging
//
//	logging.LogKey("Favourite food?", key.String())
//	logging.LogRejected("Age?", "Too big! Must be below or equal to 120")
//	logging.LogAnswer("Age?", "45")
//	logging.LogConnection(remoteAddr, "session_started")
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
