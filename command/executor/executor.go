package executor

import (
	"context"

	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/position"
	"github.com/orest-d/liquer-go/state"
	"github.com/orest-d/liquer-go/value"
)

type key struct {
	realm, namespace, name string
}

// Executor is the (realm, namespace, name) -> boxed Command registry the
// interpreter dispatches Action steps against.
type Executor struct {
	commands map[key]Command
}

// NewExecutor returns an empty, ready-to-use Executor.
func NewExecutor() *Executor {
	return &Executor{commands: map[key]Command{}}
}

// Register binds cmd to (realm, namespace, name), replacing any previous
// binding — this registry holds dispatchable implementations, not
// metadata, so re-registration is a normal part of wiring a host module
// rather than a conflict the command metadata registry would reject.
func (e *Executor) Register(realm, namespace, name string, cmd Command) {
	e.commands[key{realm, namespace, name}] = cmd
}

// Lookup finds the command registered for (realm, namespace, name),
// searching nothing beyond that exact key; namespace fallback is the
// command metadata registry's job (FindCommandInNamespaces resolves which
// namespace an action binds to before the executor is ever consulted).
func (e *Executor) Lookup(realm, namespace, name string) (Command, bool) {
	cmd, ok := e.commands[key{realm, namespace, name}]
	return cmd, ok
}

// Call resolves and executes (realm, namespace, name) against st and
// params, or returns an ActionNotRegistered error naming the single
// namespace searched (the caller already resolved namespace via the
// command metadata registry).
func (e *Executor) Call(ctx context.Context, realm, namespace, name string, pos position.Position, st *state.State, params []Parameter) (value.Value, error) {
	cmd, ok := e.Lookup(realm, namespace, name)
	if !ok {
		return nil, lqerrors.NewActionNotRegistered(pos, name, []string{namespace})
	}
	args := NewNamedArguments(params, pos, name)
	return cmd.Execute(ctx, st, args)
}
