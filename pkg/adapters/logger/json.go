package logger

import (
	"io"

	"github.com/ideamans/go-l10n"
	"github.com/rs/zerolog"

	"github.com/user/postergen/pkg/ports"
)

// JSONLogger writes one JSON object per message using zerolog.
// Messages are translated the same way as ConsoleLogger.
type JSONLogger struct {
	zl zerolog.Logger
}

// NewJSON creates a JSON logger writing to w. Messages below level are
// dropped by zerolog.
func NewJSON(w io.Writer, level ports.LogLevel) *JSONLogger {
	return &JSONLogger{
		zl: zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger(),
	}
}

func zerologLevel(level ports.LogLevel) zerolog.Level {
	switch level {
	case ports.LevelDebug:
		return zerolog.DebugLevel
	case ports.LevelInfo:
		return zerolog.InfoLevel
	case ports.LevelWarn:
		return zerolog.WarnLevel
	case ports.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// Debug logs a debug message.
func (l *JSONLogger) Debug(msg string, args ...interface{}) {
	l.zl.Debug().Msg(l10n.F(msg, args...))
}

// Info logs an informational message.
func (l *JSONLogger) Info(msg string, args ...interface{}) {
	l.zl.Info().Msg(l10n.F(msg, args...))
}

// Warn logs a warning message.
func (l *JSONLogger) Warn(msg string, args ...interface{}) {
	l.zl.Warn().Msg(l10n.F(msg, args...))
}

// Error logs an error message.
func (l *JSONLogger) Error(msg string, args ...interface{}) {
	l.zl.Error().Msg(l10n.F(msg, args...))
}

// WithComponent returns a logger that adds a "component" field.
func (l *JSONLogger) WithComponent(component string) ports.Logger {
	return &JSONLogger{zl: l.zl.With().Str("component", component).Logger()}
}

// WithRun returns a logger that adds a "run" field to every message.
func (l *JSONLogger) WithRun(runID string) *JSONLogger {
	return &JSONLogger{zl: l.zl.With().Str("run", runID).Logger()}
}

var _ ports.Logger = (*JSONLogger)(nil)
