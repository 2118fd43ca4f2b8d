// Package logger provides logging facilities for countess-release.
//
// It implements a simple, structured logging system that writes debug logs
// through log/slog to an optional file and user-facing messages to the
// console. The standard implementation, DefaultLogger, satisfies the
// common.Logger interface used throughout the application.
//
// # Message Types
//
// - Info / Warning / Error: debug-oriented, written to the log file
// - InfoToUser / Success / StatusMessage: user-facing,
//   written to stdout (errors go to stderr)
//
// # Usage
//
//	log := logger.New(true, "/path/to/log.file", true)
//	log.Info("checked working tree")
//	log.Success("Created tag %s", tag)
//	defer log.Close()
package logger
