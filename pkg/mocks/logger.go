package mocks

import (
	"fmt"
	"sync"

	"github.com/user/postergen/pkg/ports"
)

// LogEntry is a message captured by Logger.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

// Logger is a mock implementation of ports.Logger that records formatted
// messages. Loggers derived with WithComponent share the same record.
type Logger struct {
	component string
	log       *logRecord
}

type logRecord struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogger creates a new recording logger.
func NewLogger() *Logger {
	return &Logger{log: &logRecord{}}
}

func (m *Logger) add(level ports.LogLevel, msg string, args []interface{}) {
	m.log.mu.Lock()
	defer m.log.mu.Unlock()
	m.log.entries = append(m.log.entries, LogEntry{
		Level:     level,
		Component: m.component,
		Message:   fmt.Sprintf(msg, args...),
	})
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.add(ports.LevelDebug, msg, args) }
func (m *Logger) Info(msg string, args ...interface{})  { m.add(ports.LevelInfo, msg, args) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.add(ports.LevelWarn, msg, args) }
func (m *Logger) Error(msg string, args ...interface{}) { m.add(ports.LevelError, msg, args) }

func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{component: component, log: m.log}
}

// Entries returns a copy of every recorded message.
func (m *Logger) Entries() []LogEntry {
	m.log.mu.Lock()
	defer m.log.mu.Unlock()
	out := make([]LogEntry, len(m.log.entries))
	copy(out, m.log.entries)
	return out
}

// Count returns the number of messages recorded at level.
func (m *Logger) Count(level ports.LogLevel) int {
	n := 0
	for _, e := range m.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

var _ ports.Logger = (*Logger)(nil)
