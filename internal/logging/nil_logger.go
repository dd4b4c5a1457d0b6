package logging

// NilLogger discards everything. Constructors fall back to it when handed a
// nil Logger, so the rest of the code never nil-checks before logging.
type NilLogger struct{}

// NewNilLogger returns a logger that discards all messages.
func NewNilLogger() *NilLogger {
	return &NilLogger{}
}

// Log discards the message.
func (l *NilLogger) Log(format string, args ...interface{}) {}

// IsEnabled returns false so callers can skip formatting work.
func (l *NilLogger) IsEnabled() bool {
	return false
}

// Close has nothing to release.
func (l *NilLogger) Close() error {
	return nil
}

var _ Logger = (*NilLogger)(nil)
