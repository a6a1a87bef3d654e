package executor

import (
	"context"
	"testing"

	"github.com/orest-d/liquer-go/position"
	"github.com/orest-d/liquer-go/state"
	"github.com/orest-d/liquer-go/value"
)

func TestWrap1IdentityOverState(t *testing.T) {
	cmd := Wrap1(func(ctx context.Context, st *state.State) (value.Value, error) {
		return st.Data, nil
	})
	st := state.Empty().WithData(value.NewText("hello"))
	args := NewArguments(nil, position.Unknown)
	out, err := cmd.Execute(context.Background(), &st, args)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if s, _ := out.TryString(); s != "hello" {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestWrap1RejectsExcessParameters(t *testing.T) {
	cmd := Wrap1(func(ctx context.Context, st *state.State) (value.Value, error) {
		return st.Data, nil
	})
	st := state.Empty()
	args := NewArguments([]Parameter{{Value: value.NewText("extra")}}, position.Unknown)
	if _, err := cmd.Execute(context.Background(), &st, args); err == nil {
		t.Fatalf("expected TooManyParameters error")
	}
}

func TestWrap2GreetStateAndArgument(t *testing.T) {
	cmd := Wrap2("who", StringParameter, func(ctx context.Context, st *state.State, who string) (value.Value, error) {
		base, _ := st.Data.TryString()
		return value.NewText(base + " " + who + "!"), nil
	})
	st := state.Empty().WithData(value.NewText("Hello"))
	args := NewArguments([]Parameter{{Value: value.NewText("world")}}, position.Unknown)
	out, err := cmd.Execute(context.Background(), &st, args)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if s, _ := out.TryString(); s != "Hello world!" {
		t.Fatalf("unexpected result: %q", s)
	}
}

func TestWrap2MissingArgumentReportsArgumentMissing(t *testing.T) {
	cmd := Wrap2("who", StringParameter, func(ctx context.Context, st *state.State, who string) (value.Value, error) {
		return value.None, nil
	})
	st := state.Empty()
	args := NewArguments(nil, position.Unknown)
	if _, err := cmd.Execute(context.Background(), &st, args); err == nil {
		t.Fatalf("expected ArgumentMissing error")
	}
}

func TestWrap0RejectsAnyParameter(t *testing.T) {
	cmd := Wrap0(func(ctx context.Context) (value.Value, error) {
		return value.NewI32(1), nil
	})
	st := state.Empty()
	args := NewArguments([]Parameter{{Value: value.NewI32(2)}}, position.Unknown)
	if _, err := cmd.Execute(context.Background(), &st, args); err == nil {
		t.Fatalf("expected TooManyParameters error")
	}
}

func TestExecutorLookupMiss(t *testing.T) {
	e := NewExecutor()
	st := state.Empty()
	_, err := e.Call(context.Background(), "", "root", "missing", position.Unknown, &st, nil)
	if err == nil {
		t.Fatalf("expected ActionNotRegistered error")
	}
}

func TestExecutorRegisterAndCall(t *testing.T) {
	e := NewExecutor()
	e.Register("", "root", "double", Wrap2("n", Int32Parameter, func(ctx context.Context, st *state.State, n int32) (value.Value, error) {
		return value.NewI32(n * 2), nil
	}))
	st := state.Empty()
	out, err := e.Call(context.Background(), "", "root", "double", position.Unknown, &st, []Parameter{{Value: value.NewI32(21)}})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if i, _ := out.TryI32(); i != 42 {
		t.Fatalf("unexpected result: %v", out)
	}
}
