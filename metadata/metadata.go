// Package metadata carries the per-request record that travels alongside
// every value in a LiQuer pipeline: the execution log, the status, the
// query fingerprint, and the current filename/media type.
package metadata

import "time"

// Status is the execution status of a State, mirroring the lifecycle a
// resource or computed value passes through.
type Status string

const (
	StatusNone                   Status = "none"
	StatusSubmitted              Status = "submitted"
	StatusEvaluatingParent       Status = "evaluating_parent"
	StatusEvaluation             Status = "evaluation"
	StatusEvaluatingDependencies Status = "evaluating_dependencies"
	StatusError                  Status = "error"
	StatusRecipe                 Status = "recipe"
	StatusReady                  Status = "ready"
	StatusExpired                Status = "expired"
	StatusExternal               Status = "external"
	StatusSideEffect             Status = "side_effect"
)

// LogLevel classifies a LogEntry.
type LogLevel string

const (
	LevelDebug   LogLevel = "debug"
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
)

// LogEntry is a single timestamped record in a Metadata's log.
type LogEntry struct {
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// nowFunc is overridden in tests so log timestamps are deterministic.
var nowFunc = time.Now

// Metadata is an immutable-after-construction record; every mutating
// operation returns a new value rather than modifying the receiver, so a
// State can safely share a Metadata across goroutines once adopted.
type Metadata struct {
	Log            []LogEntry `json:"log"`
	Query          string     `json:"query"`
	Status         Status     `json:"status"`
	TypeIdentifier string     `json:"type_identifier"`
	Message        string     `json:"message"`
	IsError        bool       `json:"is_error"`
	MediaType      string     `json:"media_type"`
	Filename       string     `json:"filename,omitempty"`

	// CorrelationID identifies one evaluation across log entries, set by
	// the environment that runs it rather than by anything in this
	// package.
	CorrelationID string `json:"correlation_id,omitempty"`

	// legacy holds the raw decoded object when this Metadata was read
	// from the permissive legacy wire form rather than the strict
	// record; it is never populated by code in this package and never
	// re-serialized on write.
	legacy map[string]interface{}
}

// New returns an empty Metadata with StatusNone.
func New() Metadata {
	return Metadata{Status: StatusNone}
}

func (m Metadata) withLog(level LogLevel, message string) Metadata {
	cp := m.clone()
	cp.Log = append(cp.Log, LogEntry{Level: level, Message: message, Timestamp: nowFunc()})
	return cp
}

func (m Metadata) clone() Metadata {
	cp := m
	cp.Log = append([]LogEntry(nil), m.Log...)
	return cp
}

// Debug appends a debug-level log entry.
func (m Metadata) Debug(message string) Metadata { return m.withLog(LevelDebug, message) }

// Info appends an info-level log entry.
func (m Metadata) Info(message string) Metadata { return m.withLog(LevelInfo, message) }

// Warning appends a warning-level log entry.
func (m Metadata) Warning(message string) Metadata { return m.withLog(LevelWarning, message) }

// Error appends an error-level log entry and marks the metadata as an
// error record.
func (m Metadata) Error(message string) Metadata {
	cp := m.withLog(LevelError, message)
	cp.IsError = true
	cp.Message = message
	cp.Status = StatusError
	return cp
}

// WithQuery returns a copy with the query fingerprint set to q's
// canonical encoding.
func (m Metadata) WithQuery(q string) Metadata {
	cp := m.clone()
	cp.Query = q
	return cp
}

// WithStatus returns a copy with Status set.
func (m Metadata) WithStatus(s Status) Metadata {
	cp := m.clone()
	cp.Status = s
	return cp
}

// WithTypeIdentifier returns a copy with TypeIdentifier set.
func (m Metadata) WithTypeIdentifier(id string) Metadata {
	cp := m.clone()
	cp.TypeIdentifier = id
	return cp
}

// WithFilename returns a copy with Filename set to name, and MediaType
// adjusted from name's extension when the extension is recognized;
// otherwise MediaType is left untouched.
func (m Metadata) WithFilename(name string) Metadata {
	cp := m.clone()
	cp.Filename = name
	if mt, ok := mediaTypeForFilename(name); ok {
		cp.MediaType = mt
	}
	return cp
}

// WithMediaType returns a copy with MediaType set explicitly.
func (m Metadata) WithMediaType(mediaType string) Metadata {
	cp := m.clone()
	cp.MediaType = mediaType
	return cp
}

// WithCorrelationID returns a copy with CorrelationID set, without
// overwriting one a caller already attached.
func (m Metadata) WithCorrelationID(id string) Metadata {
	if m.CorrelationID != "" {
		return m
	}
	cp := m.clone()
	cp.CorrelationID = id
	return cp
}

// IsLegacy reports whether this Metadata was decoded from the permissive
// legacy wire form (an arbitrary JSON object) rather than the strict
// record.
func (m Metadata) IsLegacy() bool { return m.legacy != nil }

// LegacyField looks up a field from the raw legacy object by key; it
// returns false for strictly-decoded metadata.
func (m Metadata) LegacyField(key string) (interface{}, bool) {
	if m.legacy == nil {
		return nil, false
	}
	v, ok := m.legacy[key]
	return v, ok
}
