package logging

// Logger is the logging surface threaded through the server, the tree
// builder, and the patch applier. Implementations must be safe for
// concurrent use by request handlers.
type Logger interface {
	// Log formats a message and records it.
	Log(format string, args ...interface{})
	// IsEnabled reports whether messages are actually recorded, letting
	// callers skip building expensive arguments.
	IsEnabled() bool
	// Close flushes pending output and releases whatever the logger holds.
	Close() error
}
