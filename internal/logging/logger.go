// Package logging provides the logging interface and default implementation
// used throughout the column-family substrate.
//
// Design: five-level interface (Error, Warn, Info, Debug, Fatal), the same
// shape RocksDB, Pebble, and Badger expose. Callers may wrap their own
// structured logger (slog, zap) by implementing Logger directly.
//
// Fatalf behavior (RocksDB-style): logs at FATAL level and calls the
// configured FatalHandler. No FatalHandler is set by default, and nothing
// in this module installs one; callers set it with SetFatalHandler. Unlike
// Pebble, Fatalf does NOT call os.Exit(1).
//
// Log format: YYYY/MM/DD HH:MM:SS LEVEL [component] message
//
// Example: 2026/08/06 18:45:13 INFO [timer] due-date scan advanced cursor
package logging

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"sync/atomic"
)

// ErrFatal is the sentinel error wrapped by fatal conditions.
var ErrFatal = errors.New("fatal error")

// FatalHandler is called when Fatalf is invoked.
//
// Contract: FatalHandler must be safe for concurrent use.
// Contract: FatalHandler must not call Fatalf (avoid infinite recursion).
type FatalHandler func(msg string)

// Level represents the logging level.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger is the logging interface every component accepts via Options.
//
// Concurrency: DefaultLogger and Discard are safe for concurrent use.
// User-provided implementations must also be safe for concurrent use.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
	// Fatalf logs a fatal error and triggers the fatal handler. It does
	// not stop the process; callers transition to a stopped state
	// themselves in response to the handler.
	Fatalf(format string, args ...any)
}

// DefaultLogger writes to a configured output at a fixed level, set at
// construction. It is stateless otherwise and safe for concurrent use.
type DefaultLogger struct {
	logger       *log.Logger
	level        Level
	fatalHandler atomic.Pointer[FatalHandler]
}

// NewDefaultLogger creates a logger writing to stderr at level.
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(os.Stderr, "", log.LstdFlags),
		level:  level,
	}
}

// NewLogger creates a logger writing to w at level.
func NewLogger(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

// SetFatalHandler sets the handler called when Fatalf is invoked.
func (l *DefaultLogger) SetFatalHandler(h FatalHandler) {
	l.fatalHandler.Store(&h)
}

func (l *DefaultLogger) Level() Level { return l.level }

func (l *DefaultLogger) Errorf(format string, args ...any) {
	if l.level >= LevelError {
		_ = l.logger.Output(2, "ERROR "+fmt.Sprintf(format, args...))
	}
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	if l.level >= LevelWarn {
		_ = l.logger.Output(2, "WARN "+fmt.Sprintf(format, args...))
	}
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	if l.level >= LevelInfo {
		_ = l.logger.Output(2, "INFO "+fmt.Sprintf(format, args...))
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.level >= LevelDebug {
		_ = l.logger.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
	}
}

// Fatalf always logs, regardless of level, then invokes the fatal handler.
func (l *DefaultLogger) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_ = l.logger.Output(2, "FATAL "+msg)
	if h := l.fatalHandler.Load(); h != nil {
		(*h)(msg)
	}
}

// Namespace prefixes for log messages, one per component that logs.
const (
	// NSTxn is the namespace for transaction commit/rollback operations.
	NSTxn = "[txn] "
	// NSCF is the namespace for column-family lifecycle operations.
	NSCF = "[cf] "
	// NSFK is the namespace for foreign-key precondition checks.
	NSFK = "[fk] "
	// NSSubscription is the namespace for message-subscription table
	// operations.
	NSSubscription = "[subscription] "
	// NSTimer is the namespace for timer table and due-date index
	// operations.
	NSTimer = "[timer] "
	// NSElementInstance is the namespace for element-instance table
	// operations.
	NSElementInstance = "[element-instance] "
	// NSRecovery is the namespace for startup recovery and integrity
	// verification.
	NSRecovery = "[recovery] "
)

// IsNil returns true if l is nil or a typed-nil interface value.
func IsNil(l Logger) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// OrDefault returns l if valid, otherwise a default WARN-level logger.
// This ensures a component's logger is never nil after construction.
func OrDefault(l Logger) Logger {
	if IsNil(l) {
		return NewDefaultLogger(LevelWarn)
	}
	return l
}
