package logging

import (
	"fmt"
	"os"
	"time"
)

// ConsoleLogger writes timestamped log lines to stderr. It is the default
// logger for server mode, where the process runs in a terminal.
type ConsoleLogger struct{}

// NewConsoleLogger creates a logger that writes to stderr.
func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{}
}

// Log writes the formatted message to stderr with a timestamp.
func (l *ConsoleLogger) Log(format string, args ...interface{}) {
	ts := time.Now().Format(time.RFC3339)
	fmt.Fprintf(os.Stderr, "[%s] %s\n", ts, fmt.Sprintf(format, args...))
}

// IsEnabled returns true for ConsoleLogger.
func (l *ConsoleLogger) IsEnabled() bool {
	return true
}

// Close does nothing for stderr output.
func (l *ConsoleLogger) Close() error {
	return nil
}

// Ensure ConsoleLogger implements the Logger interface.
var _ Logger = (*ConsoleLogger)(nil)
