// Package state defines the (value, metadata) pair threaded through one
// interpretation. It is kept as its own leaf package, alongside position
// and errors, so that command, executor and interpreter can all depend on
// it without forming an import cycle between the command registry and the
// interpreter that calls it.
package state

import (
	"github.com/orest-d/liquer-go/metadata"
	"github.com/orest-d/liquer-go/value"
)

// State is immutable after construction; the interpreter progresses by
// building a new State from the previous one and adopting it, never by
// mutating a State already in play.
type State struct {
	Data     value.Value
	Metadata metadata.Metadata
}

// Empty returns a State with no data and fresh, empty metadata.
func Empty() State {
	return State{Data: value.None, Metadata: metadata.New()}
}

// New builds a State from an already-computed value and metadata pair.
func New(data value.Value, md metadata.Metadata) State {
	return State{Data: data, Metadata: md}
}

// WithData returns a copy of s with Data replaced.
func (s State) WithData(data value.Value) State {
	return State{Data: data, Metadata: s.Metadata}
}

// WithMetadata returns a copy of s with Metadata replaced.
func (s State) WithMetadata(md metadata.Metadata) State {
	return State{Data: s.Data, Metadata: md}
}

// IsError reports whether this state's metadata records an error.
func (s State) IsError() bool { return s.Metadata.IsError }
