package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLogger writes log lines asynchronously to a file through a buffered
// channel, so request handling never blocks on disk.
type FileLogger struct {
	lines  chan string
	file   *os.File
	waiter sync.WaitGroup
	mu     sync.Mutex // guards file during Close
}

// NewFileLogger opens (creating directories as needed) the given path for
// appending and starts the background writer.
func NewFileLogger(filePath string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filePath, err)
	}

	l := &FileLogger{
		lines: make(chan string, 256),
		file:  f,
	}

	l.waiter.Add(1)
	go l.writer()

	return l, nil
}

func (l *FileLogger) writer() {
	defer l.waiter.Done()
	for msg := range l.lines {
		l.mu.Lock()
		if l.file != nil {
			_, _ = l.file.WriteString(msg)
		}
		l.mu.Unlock()
	}
}

// Log formats the message, stamps it, and queues it for writing. Messages
// are dropped rather than blocking when the buffer is full.
func (l *FileLogger) Log(format string, args ...interface{}) {
	ts := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf("[%s] %s\n", ts, fmt.Sprintf(format, args...))

	select {
	case l.lines <- msg:
	default:
	}
}

// IsEnabled returns true for FileLogger.
func (l *FileLogger) IsEnabled() bool {
	return true
}

// Close drains pending messages and closes the underlying file.
func (l *FileLogger) Close() error {
	close(l.lines)
	l.waiter.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Ensure FileLogger implements the Logger interface.
var _ Logger = (*FileLogger)(nil)
