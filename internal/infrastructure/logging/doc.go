// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for humans
//
// Domain managers accept a *Logger and fall back to NewNop when given nil,
// so tests can construct them without any logging setup.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Window launched", zap.String("app_id", "terminal"))
package logging
