// Package logging provides structured logging utilities for varsnap components.
//
// # Overview
//
// This package wraps the standard library slog package with varsnap-specific
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("varsnap", "v1.0.0")
//
//	    // Use slog as normal
//	    slog.Info("collect complete", "iteration", 3)
//	    slog.Error("read failed", "error", err)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("varsnap", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug varsnap run --exec ./a.out
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format so they never interleave
// with serialized session output on stdout:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "collect complete",
//	    "module": "varsnap",
//	    "version": "v1.0.0",
//	    "iteration": 3
//	}
package logging
