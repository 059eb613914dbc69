// Package eventlog writes the human-readable, append-only event log.
//
// Each entry is a single line "[YYYY-MM-DD HH:MM:SS] message". The file is
// never rotated or truncated; diagnostics go through zap instead.
package eventlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TimeLayout is the timestamp layout of each entry
const TimeLayout = "2006-01-02 15:04:05"

// Log appends timestamped lines to a writer
type Log struct {
	w      io.Writer
	closer io.Closer
	now    func() time.Time
	logger *zap.Logger
}

// Open opens (or creates) path in append mode
func Open(path string, logger *zap.Logger) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create event log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}

	l := New(f, time.Now, logger)
	l.closer = f
	return l, nil
}

// New creates a Log over w using now for timestamps
func New(w io.Writer, now func() time.Time, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Log{w: w, now: now, logger: logger}
}

// Log formats and appends one entry. Write failures are reported to the
// diagnostic logger and otherwise ignored.
func (l *Log) Log(format string, v ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, v...), "\n")
	line := fmt.Sprintf("[%s] %s\n", l.now().Format(TimeLayout), msg)

	l.logger.Info(msg, zap.String("source", "event"))

	if _, err := io.WriteString(l.w, line); err != nil {
		l.logger.Error("Failed to write event log", zap.Error(err))
	}
}

// Close closes the underlying file, if any
func (l *Log) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
