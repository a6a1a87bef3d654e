// Package errors defines the structured error vocabulary shared by every
// LiQuer component: the parser, the command registry and executor, the
// planner, the interpreter, and the store/cache contracts.
package errors

import (
	"fmt"
	"strings"

	"github.com/orest-d/liquer-go/position"
)

// Code identifies the kind of error.
type Code string

const (
	ParseError               Code = "parse_error"
	ArgumentMissing          Code = "argument_missing"
	ConversionError          Code = "conversion_error"
	TooManyParameters        Code = "too_many_parameters"
	ParameterError           Code = "parameter_error"
	ActionNotRegistered      Code = "action_not_registered"
	CommandAlreadyRegistered Code = "command_already_registered"
	KeyNotFound              Code = "key_not_found"
	KeyNotSupported          Code = "key_not_supported"
	KeyReadError             Code = "key_read_error"
	KeyWriteError            Code = "key_write_error"
	CacheNotSupported        Code = "cache_not_supported"
	SerializationError       Code = "serialization_error"
	NotSupported             Code = "not_supported"
	General                  Code = "general"
)

// storeErrorCodes is the subset of Code values grouped under the
// umbrella "StoreError".
var storeErrorCodes = map[Code]bool{
	KeyNotFound:     true,
	KeyNotSupported: true,
	KeyReadError:    true,
	KeyWriteError:   true,
}

// Error is the single structured error type returned by every LiQuer
// component. It always carries a Code; Position and Query are optional.
type Error struct {
	Code     Code
	Message  string
	Position position.Position
	Query    string // canonical query encoding, when the error relates to one
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Position.IsKnown() {
		b.WriteString(e.Position.String())
		b.WriteString(": ")
	}
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Query != "" {
		b.WriteString(" (query: ")
		b.WriteString(e.Query)
		b.WriteString(")")
	}
	return b.String()
}

// Is supports errors.Is(err, sentinel) against another *Error by Code.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// New constructs a structured error with a position.
func New(code Code, pos position.Position, format string, a ...interface{}) *Error {
	return &Error{Code: code, Position: pos, Message: fmt.Sprintf(format, a...)}
}

// WithQuery returns a copy of err with Query set, for attaching the
// canonical encoding of the query that was being evaluated when the
// error occurred.
func (e *Error) WithQuery(q string) *Error {
	cp := *e
	cp.Query = q
	return &cp
}

// IsCode reports whether err is a *Error with the given code.
func IsCode(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}

// IsNotFound reports whether err is a KeyNotFound store error.
func IsNotFound(err error) bool { return IsCode(err, KeyNotFound) }

// IsStoreError reports whether err is one of the four store error codes.
func IsStoreError(err error) bool {
	e, ok := err.(*Error)
	return ok && storeErrorCodes[e.Code]
}

// Errors aggregates multiple structured errors, e.g. from
// CommandMetadataRegistry.Check().
type Errors []*Error

func (es Errors) Error() string {
	switch len(es) {
	case 0:
		return "no errors"
	case 1:
		return es[0].Error()
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(es), strings.Join(parts, "\n"))
}

// HasErrors reports whether any entry is an error-level problem as opposed
// to a warning; callers that only collect warnings never populate this,
// so by default every entry in Errors is treated as an error.
func (es Errors) HasErrors() bool { return len(es) > 0 }

func NewParseError(pos position.Position, format string, a ...interface{}) *Error {
	return New(ParseError, pos, format, a...)
}

func NewArgumentMissing(pos position.Position, argument string) *Error {
	return New(ArgumentMissing, pos, "argument %q is missing and has no default", argument)
}

func NewConversionError(pos position.Position, value, typ string) *Error {
	return New(ConversionError, pos, "cannot convert %q to %s", value, typ)
}

func NewTooManyParameters(pos position.Position, command string) *Error {
	return New(TooManyParameters, pos, "too many parameters for %s", command)
}

func NewParameterError(pos position.Position, format string, a ...interface{}) *Error {
	return New(ParameterError, pos, format, a...)
}

func NewActionNotRegistered(pos position.Position, name string, namespaces []string) *Error {
	return New(ActionNotRegistered, pos, "action %q not registered in namespaces %v", name, namespaces)
}

func NewCommandAlreadyRegistered(realm, namespace, name string) *Error {
	return New(CommandAlreadyRegistered, position.Unknown, "command %s/%s/%s already registered", realm, namespace, name)
}

func NewKeyNotFound(key, store string) *Error {
	return &Error{Code: KeyNotFound, Message: fmt.Sprintf("key %q not found in store %q", key, store)}
}

func NewKeyNotSupported(key, store string) *Error {
	return &Error{Code: KeyNotSupported, Message: fmt.Sprintf("key %q not supported by store %q", key, store)}
}

func NewKeyReadError(key, store string, cause error) *Error {
	return &Error{Code: KeyReadError, Message: fmt.Sprintf("failed to read key %q from store %q: %v", key, store, cause)}
}

func NewKeyWriteError(key, store string, cause error) *Error {
	return &Error{Code: KeyWriteError, Message: fmt.Sprintf("failed to write key %q to store %q: %v", key, store, cause)}
}

func NewCacheNotSupported(operation string) *Error {
	return &Error{Code: CacheNotSupported, Message: fmt.Sprintf("cache does not support %s", operation)}
}

func NewSerializationError(format string, cause error) *Error {
	msg := fmt.Sprintf("unsupported or malformed format %q", format)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{Code: SerializationError, Message: msg}
}

func NewNotSupported(format string, a ...interface{}) *Error {
	return &Error{Code: NotSupported, Message: fmt.Sprintf(format, a...)}
}

func NewGeneral(format string, a ...interface{}) *Error {
	return &Error{Code: General, Message: fmt.Sprintf(format, a...)}
}
