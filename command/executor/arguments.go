// Package executor wraps arbitrary host functions into the uniform
// command signature the interpreter calls: (context, *State, *Arguments)
// -> (Value, error). Binding a host function's typed parameters to the
// engine's resolved, untyped parameter vector is done with a small set of
// generic Wrap helpers rather than reflection.
package executor

import (
	"context"

	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/position"
	"github.com/orest-d/liquer-go/state"
	"github.com/orest-d/liquer-go/value"
)

// Parameter is one already-resolved action parameter: a concrete value
// (link parameters are resolved to a value by the interpreter before the
// executor ever sees them) plus the source position, for error reporting.
type Parameter struct {
	Value    value.Value
	Position position.Position
}

// Arguments is the cursor a Command consumes its resolved parameters
// through.
type Arguments struct {
	params []Parameter
	cursor int
	// actionPosition is used for errors raised when the cursor is
	// already exhausted (no parameter position to blame).
	actionPosition position.Position
	commandName    string
}

// NewArguments builds an Arguments cursor over params.
func NewArguments(params []Parameter, actionPosition position.Position) *Arguments {
	return &Arguments{params: params, actionPosition: actionPosition}
}

// NewNamedArguments is NewArguments plus the command name, used to
// produce more specific TooManyParameters errors.
func NewNamedArguments(params []Parameter, actionPosition position.Position, commandName string) *Arguments {
	return &Arguments{params: params, actionPosition: actionPosition, commandName: commandName}
}

// CommandName returns the name this Arguments cursor was bound under, or
// "" if it was constructed anonymously.
func (a *Arguments) CommandName() string { return a.commandName }

// Len returns the total number of resolved parameters, regardless of
// cursor position.
func (a *Arguments) Len() int { return len(a.params) }

// HasNoParameters reports whether zero parameters were supplied at all.
func (a *Arguments) HasNoParameters() bool { return len(a.params) == 0 }

// AllParametersUsed reports whether the cursor has consumed every
// parameter.
func (a *Arguments) AllParametersUsed() bool { return a.cursor >= len(a.params) }

// ExcessParameters returns the parameters left unconsumed past the
// cursor.
func (a *Arguments) ExcessParameters() []Parameter {
	if a.cursor >= len(a.params) {
		return nil
	}
	return a.params[a.cursor:]
}

// ParameterPosition returns the position of the next unconsumed
// parameter, or the action's own position if the cursor is exhausted.
func (a *Arguments) ParameterPosition() position.Position {
	if a.cursor < len(a.params) {
		return a.params[a.cursor].Position
	}
	return a.actionPosition
}

// GetParameter advances the cursor and returns the next parameter, or
// ok=false if none remain.
func (a *Arguments) GetParameter() (Parameter, bool) {
	if a.cursor >= len(a.params) {
		return Parameter{}, false
	}
	p := a.params[a.cursor]
	a.cursor++
	return p, true
}

// FromParameter converts a resolved parameter value into a host type T.
// Built-in converters for the engine's scalar kinds are provided below;
// a command author supplies their own for any other host type.
type FromParameter[T any] func(v value.Value, pos position.Position) (T, error)

// Get advances args' cursor and converts the next parameter via convert.
// Missing parameter -> ArgumentMissing at the action's position;
// conversion failure -> whatever error convert returns (callers typically
// return a ConversionError carrying the parameter's own position).
func Get[T any](args *Arguments, argument string, convert FromParameter[T]) (T, error) {
	var zero T
	p, ok := args.GetParameter()
	if !ok {
		return zero, lqerrors.NewArgumentMissing(args.actionPosition, argument)
	}
	return convert(p.Value, p.Position)
}

// StringParameter converts a parameter to a Go string.
func StringParameter(v value.Value, pos position.Position) (string, error) {
	s, err := v.TryString()
	if err != nil {
		return "", lqerrors.NewConversionError(pos, v.String(), "string")
	}
	return s, nil
}

// Int32Parameter converts a parameter to int32.
func Int32Parameter(v value.Value, pos position.Position) (int32, error) {
	i, err := v.TryI32()
	if err != nil {
		return 0, lqerrors.NewConversionError(pos, v.String(), "i32")
	}
	return i, nil
}

// Int64Parameter converts a parameter to int64.
func Int64Parameter(v value.Value, pos position.Position) (int64, error) {
	i, err := v.TryI64()
	if err != nil {
		return 0, lqerrors.NewConversionError(pos, v.String(), "i64")
	}
	return i, nil
}

// Float64Parameter converts a parameter to float64.
func Float64Parameter(v value.Value, pos position.Position) (float64, error) {
	f, err := v.TryF64()
	if err != nil {
		return 0, lqerrors.NewConversionError(pos, v.String(), "f64")
	}
	return f, nil
}

// BoolParameter converts a parameter to bool.
func BoolParameter(v value.Value, pos position.Position) (bool, error) {
	b, err := v.TryBool()
	if err != nil {
		return false, lqerrors.NewConversionError(pos, v.String(), "bool")
	}
	return b, nil
}

// AnyParameter passes the resolved value through unconverted.
func AnyParameter(v value.Value, _ position.Position) (value.Value, error) {
	return v, nil
}

// Command is the uniform capability the interpreter invokes for every
// Action step.
type Command interface {
	Execute(ctx context.Context, st *state.State, args *Arguments) (value.Value, error)
}

type commandFunc func(ctx context.Context, st *state.State, args *Arguments) (value.Value, error)

func (f commandFunc) Execute(ctx context.Context, st *state.State, args *Arguments) (value.Value, error) {
	return f(ctx, st, args)
}
