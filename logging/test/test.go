// Package test provides a buffering Logger implementation so tests
// elsewhere can assert on what was logged without capturing stdout/stderr.
package test

import (
	"fmt"
	"sync"

	"github.com/orest-d/liquer-go/logging"
)

// LogEntry represents a buffered log message.
type LogEntry struct {
	Level   logging.Level
	Fields  map[string]interface{}
	Message string
}

// Logger buffers every message logged through it.
type Logger struct {
	level   logging.Level
	fields  map[string]interface{}
	entries *[]LogEntry
	mtx     sync.Mutex
}

func New() *Logger {
	return &Logger{
		level:   logging.Info,
		entries: &[]LogEntry{},
	}
}

func (l *Logger) WithFields(fields map[string]interface{}) logging.Logger {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{level: l.level, entries: l.entries, fields: merged}
}

func (l *Logger) GetFields() map[string]interface{} { return l.fields }

func (l *Logger) Debug(f string, a ...interface{}) { l.append(logging.Debug, f, a...) }
func (l *Logger) Info(f string, a ...interface{})  { l.append(logging.Info, f, a...) }
func (l *Logger) Warn(f string, a ...interface{})  { l.append(logging.Warn, f, a...) }
func (l *Logger) Error(f string, a ...interface{}) { l.append(logging.Error, f, a...) }

func (l *Logger) SetLevel(level logging.Level) { l.level = level }
func (l *Logger) GetLevel() logging.Level      { return l.level }

// Entries returns every message buffered so far, in order.
func (l *Logger) Entries() []LogEntry {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return *l.entries
}

func (l *Logger) append(lvl logging.Level, f string, a ...interface{}) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	*l.entries = append(*l.entries, LogEntry{
		Level:   lvl,
		Fields:  l.fields,
		Message: fmt.Sprintf(f, a...),
	})
}
