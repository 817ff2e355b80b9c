package log

import "testing"

// TestLogger routes the libraries logging through a 'testing.T' so it's captured alongside the test which produced it.
type TestLogger struct {
	T *testing.T
}

var _ Logger = TestLogger{}

// Log implements the 'Logger' interface, prefixing each statement with a short level tag.
func (t TestLogger) Log(level Level, format string, args ...any) {
	var prefix string

	switch level {
	case LevelDebug:
		prefix = "DEBU"
	case LevelInfo:
		prefix = "INFO"
	case LevelError:
		prefix = "ERRO"
	}

	t.T.Logf(prefix+": "+format, args...)
}
