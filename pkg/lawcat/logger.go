package lawcat

// Logger provides a pluggable logging interface for catalog builds.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Warn logs recoverable problems such as skipped files.
	Warn(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})

	// With returns a logger that attaches the given key/value pairs to every message.
	With(keysAndValues ...interface{}) Logger
}
