// Package logger provides a structured logging facility based on Zap.
//
// Every logger it builds writes line-based console output: level, timestamp
// (month-day|time) and message followed by structured fields. The harness has
// no machine-readable log mode.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (colored level names) or plain
//
// The configuration is read once at startup and the resulting *zap.Logger is
// handed explicitly to the components that log; nothing replaces the zap
// globals.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("start server mode test")
//
//	// In a fixture server handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
