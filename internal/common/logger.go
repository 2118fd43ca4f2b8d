package common

// Logger is the logging contract shared by the release components.
//
// The release flow talks to the operator on two channels: a debug log
// (file only, off unless -debug is set) and the terminal. Info, Warning
// and Error go to the debug log; InfoToUser, Success and StatusMessage
// also reach the terminal, which is where the progress of a bump is
// reported.
type Logger interface {
	// Info records a debug-level message in the log file.
	Info(format string, args ...interface{})

	// Warning records a warning in the log file.
	Warning(format string, args ...interface{})

	// Error records an error in the log file.
	Error(format string, args ...interface{})

	// InfoToUser reports progress to the operator and the log file.
	InfoToUser(format string, args ...interface{})

	// Success reports a completed step to the operator and the log file.
	Success(format string, args ...interface{})

	// StatusMessage prints an unadorned line for the operator, such as
	// the post-release summary.
	StatusMessage(format string, args ...interface{})
}
