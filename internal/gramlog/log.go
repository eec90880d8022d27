// Package gramlog is a small leveled logger, grounded on
// github.com/nihei9/9gram's log package (a writer wrapped in a handful of
// formatting functions) but recast as an instance rather than a package
// global: a caller (httpapi) owns its *Logger rather than sharing
// process-wide state. The CLI does not log through this package.
package gramlog

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a logged line.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger writes leveled, correlation-ID-tagged lines to an underlying
// writer.
type Logger struct {
	out io.Writer
}

// New returns a Logger writing to out.
func New(out io.Writer) *Logger {
	return &Logger{out: out}
}

func (l *Logger) log(level Level, id uuid.UUID, format string, args ...interface{}) {
	if l == nil || l.out == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "%s [%-5s] %s %s\n", time.Now().UTC().Format(time.RFC3339), level, id, msg)
}

// Info logs an informational line tagged with correlation ID id.
func (l *Logger) Info(id uuid.UUID, format string, args ...interface{}) {
	l.log(LevelInfo, id, format, args...)
}

// Warn logs a warning line tagged with correlation ID id.
func (l *Logger) Warn(id uuid.UUID, format string, args ...interface{}) {
	l.log(LevelWarn, id, format, args...)
}

// Error logs an error line tagged with correlation ID id.
func (l *Logger) Error(id uuid.UUID, format string, args ...interface{}) {
	l.log(LevelError, id, format, args...)
}
