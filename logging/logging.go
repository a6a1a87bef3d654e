// Package logging provides the structured Logger interface used
// throughout LiQuer, a logrus-backed StandardLogger implementation, and a
// NoOpLogger for callers that don't want log output.
package logging

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level is a log severity, ordered the same way logrus orders them.
type Level int

const (
	Error Level = iota
	Warn
	Info
	Debug
)

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	case Debug:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger is the logging contract every LiQuer component that emits log
// messages depends on, rather than on a concrete implementation.
type Logger interface {
	Debug(fmt string, a ...interface{})
	Info(fmt string, a ...interface{})
	Warn(fmt string, a ...interface{})
	Error(fmt string, a ...interface{})

	// WithFields returns a Logger that includes fields on every message
	// logged through it, merged with (and overriding) any fields already
	// attached.
	WithFields(fields map[string]interface{}) Logger
	GetFields() map[string]interface{}

	GetLevel() Level
	SetLevel(Level)
}

// StandardLogger is the default Logger, backed by a logrus.Logger.
type StandardLogger struct {
	logger *logrus.Logger
	fields map[string]interface{}
}

// New returns a StandardLogger writing JSON-formatted entries to stderr at
// Info level.
func New() *StandardLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.JSONFormatter{})
	return &StandardLogger{logger: l}
}

// SetOutput redirects where log entries are written.
func (l *StandardLogger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

// SetFormatter overrides the logrus formatter used for entries.
func (l *StandardLogger) SetFormatter(f logrus.Formatter) {
	l.logger.SetFormatter(f)
}

func (l *StandardLogger) entry() *logrus.Entry {
	return l.logger.WithFields(l.fields)
}

func (l *StandardLogger) Debug(f string, a ...interface{}) { l.entry().Debugf(f, a...) }
func (l *StandardLogger) Info(f string, a ...interface{})  { l.entry().Infof(f, a...) }
func (l *StandardLogger) Warn(f string, a ...interface{})  { l.entry().Warnf(f, a...) }
func (l *StandardLogger) Error(f string, a ...interface{}) { l.entry().Errorf(f, a...) }

func (l *StandardLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &StandardLogger{logger: l.logger, fields: merged}
}

func (l *StandardLogger) GetFields() map[string]interface{} { return l.fields }

func (l *StandardLogger) GetLevel() Level {
	switch l.logger.GetLevel() {
	case logrus.ErrorLevel:
		return Error
	case logrus.WarnLevel:
		return Warn
	case logrus.DebugLevel:
		return Debug
	default:
		return Info
	}
}

func (l *StandardLogger) SetLevel(level Level) {
	l.logger.SetLevel(level.logrusLevel())
}

// NoOpLogger discards every message; useful where a Logger is required but
// no output is wanted, e.g. in tests unrelated to logging behavior.
type NoOpLogger struct {
	level  Level
	fields map[string]interface{}
}

func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (l *NoOpLogger) Debug(f string, a ...interface{}) {}
func (l *NoOpLogger) Info(f string, a ...interface{})  {}
func (l *NoOpLogger) Warn(f string, a ...interface{})  {}
func (l *NoOpLogger) Error(f string, a ...interface{}) {}

func (l *NoOpLogger) WithFields(fields map[string]interface{}) Logger {
	return &NoOpLogger{level: l.level, fields: fields}
}
func (l *NoOpLogger) GetFields() map[string]interface{} { return l.fields }
func (l *NoOpLogger) GetLevel() Level                    { return l.level }
func (l *NoOpLogger) SetLevel(level Level)               { l.level = level }

// RequestContext carries the per-evaluation fields attached to every log
// message emitted while handling one query evaluation.
type RequestContext struct {
	ClientAddr string
	EvalID     uint64
	Query      string
}

// Fields renders a RequestContext as logrus-style fields.
func (rc RequestContext) Fields() map[string]interface{} {
	return map[string]interface{}{
		"client_addr": rc.ClientAddr,
		"eval_id":     rc.EvalID,
		"query":       rc.Query,
	}
}

type requestContextKey struct{}

// NewContext returns a copy of parent carrying val, retrievable later with
// FromContext.
func NewContext(parent context.Context, val *RequestContext) context.Context {
	return context.WithValue(parent, requestContextKey{}, val)
}

// FromContext returns the RequestContext attached to ctx, if any.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	val, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	return val, ok
}

type evalIDKey struct{}

// WithEvalID attaches an evaluation correlation ID to ctx, for tying
// together every log line produced while evaluating one query.
func WithEvalID(parent context.Context, id string) context.Context {
	return context.WithValue(parent, evalIDKey{}, id)
}

// EvalIDFromContext returns the evaluation correlation ID attached to ctx,
// if any.
func EvalIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(evalIDKey{}).(string)
	return id, ok
}
