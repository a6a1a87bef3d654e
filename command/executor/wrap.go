package executor

import (
	"context"

	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/state"
	"github.com/orest-d/liquer-go/value"
)

// Wrap0 wraps a host function that takes no state and no parameters.
// Arity-0: any supplied parameter is a TooManyParameters error.
func Wrap0(fn func(ctx context.Context) (value.Value, error)) Command {
	return commandFunc(func(ctx context.Context, st *state.State, args *Arguments) (value.Value, error) {
		if !args.HasNoParameters() {
			return nil, lqerrors.NewTooManyParameters(args.ParameterPosition(), args.CommandName())
		}
		return fn(ctx)
	})
}

// Wrap1 wraps a host function over the state alone. Arity-1: every
// supplied parameter must be consumed by fn itself (it isn't, since fn
// takes none) — so any parameter present is excess.
func Wrap1(fn func(ctx context.Context, st *state.State) (value.Value, error)) Command {
	return commandFunc(func(ctx context.Context, st *state.State, args *Arguments) (value.Value, error) {
		result, err := fn(ctx, st)
		if err != nil {
			return nil, err
		}
		if !args.AllParametersUsed() {
			return nil, lqerrors.NewTooManyParameters(args.ParameterPosition(), args.CommandName())
		}
		return result, nil
	})
}

// Wrap2 wraps a host function of state plus one typed argument.
func Wrap2[A any](
	argName string, convA FromParameter[A],
	fn func(ctx context.Context, st *state.State, a A) (value.Value, error),
) Command {
	return commandFunc(func(ctx context.Context, st *state.State, args *Arguments) (value.Value, error) {
		a, err := Get(args, argName, convA)
		if err != nil {
			return nil, err
		}
		result, err := fn(ctx, st, a)
		if err != nil {
			return nil, err
		}
		if !args.AllParametersUsed() {
			return nil, lqerrors.NewTooManyParameters(args.ParameterPosition(), args.CommandName())
		}
		return result, nil
	})
}

// Wrap3 wraps a host function of state plus two typed arguments.
func Wrap3[A, B any](
	nameA string, convA FromParameter[A],
	nameB string, convB FromParameter[B],
	fn func(ctx context.Context, st *state.State, a A, b B) (value.Value, error),
) Command {
	return commandFunc(func(ctx context.Context, st *state.State, args *Arguments) (value.Value, error) {
		a, err := Get(args, nameA, convA)
		if err != nil {
			return nil, err
		}
		b, err := Get(args, nameB, convB)
		if err != nil {
			return nil, err
		}
		result, err := fn(ctx, st, a, b)
		if err != nil {
			return nil, err
		}
		if !args.AllParametersUsed() {
			return nil, lqerrors.NewTooManyParameters(args.ParameterPosition(), args.CommandName())
		}
		return result, nil
	})
}

// Wrap4 wraps a host function of state plus three typed arguments.
func Wrap4[A, B, C any](
	nameA string, convA FromParameter[A],
	nameB string, convB FromParameter[B],
	nameC string, convC FromParameter[C],
	fn func(ctx context.Context, st *state.State, a A, b B, c C) (value.Value, error),
) Command {
	return commandFunc(func(ctx context.Context, st *state.State, args *Arguments) (value.Value, error) {
		a, err := Get(args, nameA, convA)
		if err != nil {
			return nil, err
		}
		b, err := Get(args, nameB, convB)
		if err != nil {
			return nil, err
		}
		c, err := Get(args, nameC, convC)
		if err != nil {
			return nil, err
		}
		result, err := fn(ctx, st, a, b, c)
		if err != nil {
			return nil, err
		}
		if !args.AllParametersUsed() {
			return nil, lqerrors.NewTooManyParameters(args.ParameterPosition(), args.CommandName())
		}
		return result, nil
	})
}
