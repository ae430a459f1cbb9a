package applog

// noopLogger is the zero-configuration default: every call is a no-op.
type noopLogger struct{}

// Noop returns a logger that discards everything, for tests that want to
// silence output without standing up a real sink.
func Noop() Logger { return &noopLogger{} }

func (l *noopLogger) Debug(msg string, fields ...Field) {}
func (l *noopLogger) Info(msg string, fields ...Field)  {}
func (l *noopLogger) Warn(msg string, fields ...Field)  {}
func (l *noopLogger) Error(msg string, fields ...Field) {}
