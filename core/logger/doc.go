// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates seamlessly with the Fiber web framework.
//
// # Correlation
//
// Two identifiers tie log lines together. Request handlers use WithRayID,
// which extracts the ray id from a Fiber context so that all logs related
// to one HTTP request can be correlated. Batch transformations use
// NewRunID and WithRunID the same way: one run id per invocation, stamped
// on every line the run emits.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
