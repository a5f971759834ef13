package logging

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Logger appends timestamped lines to a single file. It is shared by all
// workers, so every line is formatted in full and written with one call under
// the mutex; concurrent appenders can never interleave partial lines.
type Logger struct {
	mu   sync.Mutex
	file *os.File
}

// New opens (or creates) the log file at `path` in append mode.
func New(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return &Logger{file: file}, nil
}

// Logf writes one timestamped line. If the file write fails the line goes to
// stderr instead, so progress is never silently lost.
func (l *Logger) Logf(format string, args ...any) {
	line := fmt.Sprintf("%s: %s\n", time.Now().Format(time.ANSIC), fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.WriteString(line); err != nil {
		fmt.Fprint(os.Stderr, line)
	}
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
