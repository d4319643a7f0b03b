// Package logging provides structured logging with secret redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Automatic redaction of token-shaped secrets (GITHUB_TOKEN and similar)
//   - Context-aware logging with run IDs and metadata
//   - Async buffering for non-blocking writes
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	// Create a logger
//	logger := logging.New(logging.Config{
//	    Level:         "info",
//	    Format:        "json",
//	    RedactSecrets: true,
//	})
//
//	// Log structured data
//	logger.Info("check completed",
//	    "namespace", "npm",
//	    "authorization", "Bearer gho_abc123",  // Automatically redacted
//	    "duration_ms", 1234,
//	)
//
//	// Create context-aware logger
//	ctx := logging.WithRunID(ctx, "run-123")
//	ctxLogger := logger.WithContext(ctx)
//	ctxLogger.Info("processing")  // Includes run_id automatically
//
// # Secret Redaction
//
// Token-shaped values are redacted from log fields when RedactSecrets is
// enabled, so a GITHUB_TOKEN never reaches a log sink:
//
//   - Bearer tokens: "Bearer gho_abc123" → "Bearer ***"
//   - GitHub tokens: "ghp_abc123" → "***"
//   - Generic key/value secrets: "token=abc123" → "token=***"
//
// # Performance
//
// Async buffering ensures logging doesn't block the adapter fan-out:
//   - <1µs when log level filters out the message
//   - <10µs when writing to buffer
//   - Dropped logs are counted if buffer is full
package logging
