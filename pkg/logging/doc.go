// Package logging provides structured logging configuration for itemd.
//
// This package wraps log/slog so every component logs the same way. It
// supports configurable log levels and output formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  cfg.Log.Level,
//	    Format: cfg.Log.Format,
//	})
//
//	logger.Info("server started", "port", 5000)
//	logger.Error("failed to encode response", "error", err)
//
// # Integration
//
// Components accept a *slog.Logger in their constructor. If none is
// provided they use logging.Nop().
package logging
