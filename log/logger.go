// Package log exposes the pluggable logger used by this library.
//
// NOTE: By default all logging output is discarded, applications which want visibility into what the library is doing
// should install a logger using 'SetLogger'.
package log

// Level indicates the verbosity of a log statement.
type Level uint8

const (
	// LevelDebug includes fine-grained events which are mostly useful when debugging the library itself, for example
	// the exact command lines being run.
	LevelDebug Level = iota

	// LevelInfo includes coarse-grained events which highlight the progress of the library.
	LevelInfo

	// LevelError includes error events which the library was able to continue after.
	LevelError
)

// Logger may be implemented by applications to receive the log statements produced by this library.
type Logger interface {
	Log(level Level, format string, args ...any)
}

// logger is used internally by the library, the functions below all use/affect this logger.
var logger Logger

// SetLogger sets the logger used by the library, a <nil> logger discards all logging output.
func SetLogger(l Logger) {
	logger = l
}

// Logf allows raw access to the underlying logger, most use cases should be through the functions below.
func Logf(level Level, format string, args ...any) {
	if logger == nil {
		return
	}

	logger.Log(level, format, args...)
}

// Debugf logs the provided information at the debug level.
func Debugf(format string, args ...any) {
	Logf(LevelDebug, format, args...)
}

// Infof logs the provided information at the info level.
func Infof(format string, args ...any) {
	Logf(LevelInfo, format, args...)
}

// Errorf logs the provided information at the error level.
func Errorf(format string, args ...any) {
	Logf(LevelError, format, args...)
}
