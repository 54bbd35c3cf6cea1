package common

import (
	"io"
	"log/slog"
	"os"
)

// LogLevel represents logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelDebug:
		return "debug"
	default:
		return "info"
	}
}

// ToSlogLevel converts LogLevel to slog.Level
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel accepts error, warn(ing), info and debug. Empty means info.
func ParseLogLevel(s string) (LogLevel, bool) {
	switch s {
	case "error":
		return LogLevelError, true
	case "warn", "warning":
		return LogLevelWarn, true
	case "info", "":
		return LogLevelInfo, true
	case "debug":
		return LogLevelDebug, true
	}
	return LogLevelInfo, false
}

// Logger wraps slog with the level it was built with and the masker feeding its handler.
type Logger struct {
	*slog.Logger
	level  LogLevel
	masker *Masker
}

func newLogger(h slog.Handler, level LogLevel, m *Masker) *Logger {
	return &Logger{Logger: slog.New(h), level: level, masker: m}
}

// NewLogger creates a text logger writing to stdout
func NewLogger(level LogLevel) *Logger {
	return NewLoggerTo(os.Stdout, "text", level)
}

// NewJSONLogger creates a structured logger with JSON output
func NewJSONLogger(level LogLevel) *Logger {
	return NewLoggerTo(os.Stdout, "json", level)
}

// NewColorLogger creates a logger using ColorHandler with colors forced on
func NewColorLogger(level LogLevel) *Logger {
	return NewColorLoggerTo(os.Stdout, level)
}

// NewColorLoggerTo is NewColorLogger writing to w.
func NewColorLoggerTo(w io.Writer, level LogLevel) *Logger {
	l := NewLoggerTo(w, "color", level)
	if ch, ok := l.Handler().(*ColorHandler); ok {
		ch.SetColorEnabled(true)
	}
	return l
}

// NewLoggerTo builds a logger of the given format ("text", "json" or "color") writing to w.
// Every format masks credentials through the same Masker.
func NewLoggerTo(w io.Writer, format string, level LogLevel) *Logger {
	m := NewMasker()
	opts := &slog.HandlerOptions{
		Level:       level.ToSlogLevel(),
		ReplaceAttr: m.ReplaceAttr,
	}
	switch format {
	case "json":
		return newLogger(slog.NewJSONHandler(w, opts), level, m)
	case "color", "colour":
		ch := NewColorHandler(w, opts)
		ch.SetMasker(m)
		return newLogger(ch, level, m)
	default:
		return newLogger(slog.NewTextHandler(w, opts), level, m)
	}
}

// Level returns the current log level
func (l *Logger) Level() LogLevel {
	return l.level
}

// EnableMasking toggles credential masking for this logger
func (l *Logger) EnableMasking(enabled bool) {
	if l.masker != nil {
		l.masker.SetEnabled(enabled)
	}
}

// AddSecret masks every later occurrence of value in this logger's output,
// including loggers derived from it with the With* helpers.
func (l *Logger) AddSecret(name, value string) {
	if l.masker != nil {
		l.masker.AddLiteral(name, value)
	}
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), level: l.level, masker: l.masker}
}

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// WithProject returns a logger scoped to a Pages project
func (l *Logger) WithProject(project string) *Logger {
	return l.with("project", project)
}

// WithRequest returns a logger with HTTP request context
func (l *Logger) WithRequest(method, url string) *Logger {
	return l.with("method", method, "url", url)
}

var defaultLogger = NewLogger(LogLevelInfo)

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger *Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}

// GetLogger returns the default logger
func GetLogger() *Logger {
	return defaultLogger
}

// LogError logs an error with context
func LogError(msg string, err error, attrs ...any) {
	args := append([]any{"error", err}, attrs...)
	defaultLogger.Error(msg, args...)
}
