package environment

import (
	"context"
	"strings"
	"testing"

	"github.com/orest-d/liquer-go/ast"
	"github.com/orest-d/liquer-go/command"
	"github.com/orest-d/liquer-go/command/executor"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
	"github.com/orest-d/liquer-go/state"
	storemem "github.com/orest-d/liquer-go/store/memory"
	"github.com/orest-d/liquer-go/value"
)

// TestEnumArgument exercises the enum scenario end to end: a resolved
// alternative becomes the command's argument value, and a name outside
// the table (with OthersAllowed unset) is rejected during planning, not
// evaluation.
func TestEnumArgument(t *testing.T) {
	r := command.NewRegistry()
	ex := executor.NewExecutor()

	if err := r.Register(command.CommandMetadata{
		Name: "pick",
		Arguments: []command.ArgInfo{{
			Name: "choice",
			Type: command.TypeEnum,
			Enum: &command.Enum{
				Name: "Choice",
				Alternatives: []command.EnumAlternative{
					{Name: "a", Value: value.NewI32(1)},
					{Name: "b", Value: value.NewI32(2)},
				},
			},
		}},
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	ex.Register("", "", "pick", executor.Wrap2("choice", executor.Int32Parameter,
		func(ctx context.Context, st *state.State, choice int32) (value.Value, error) {
			return value.NewI32(choice), nil
		}))

	env := New(r, ex, WithMetrics(NewMetrics(nil)))

	st, err := env.Evaluate(context.Background(), "pick-b")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if n, _ := st.Data.TryI32(); n != 2 {
		t.Fatalf("unexpected result: %v", st.Data)
	}

	if _, err := env.Evaluate(context.Background(), "pick-c"); err == nil {
		t.Fatal("expected a ParameterError for an unresolvable enum alternative")
	} else if !lqerrors.IsCode(err, lqerrors.ParameterError) {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestResourceTransformCSVColumn exercises a stored CSV resource piped
// through a column-projecting action, grounding the "Resource+transform"
// scenario's shape (a store-backed GetResourceStep feeding an ActionStep)
// without requiring a built-in CSV/table value type: to_table and column
// are registered the same way any embedder would register their own
// domain-specific commands.
func TestResourceTransformCSVColumn(t *testing.T) {
	r := command.NewRegistry()
	ex := executor.NewExecutor()

	if err := r.Register(command.CommandMetadata{Name: "to_table"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	ex.Register("", "", "to_table", executor.Wrap1(func(ctx context.Context, st *state.State) (value.Value, error) {
		text, err := st.Data.TryString()
		if err != nil {
			return nil, err
		}
		return value.NewText(text), nil
	}))

	if err := r.Register(command.CommandMetadata{
		Name:      "column",
		Arguments: []command.ArgInfo{{Name: "name", Type: command.TypeString}},
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	ex.Register("", "", "column", executor.Wrap2("name", executor.StringParameter,
		func(ctx context.Context, st *state.State, name string) (value.Value, error) {
			text, err := st.Data.TryString()
			if err != nil {
				return nil, err
			}
			rows := strings.Split(strings.TrimRight(text, "\n"), "\n")
			header := strings.Split(rows[0], ",")
			col := -1
			for i, h := range header {
				if h == name {
					col = i
				}
			}
			if col == -1 || len(rows) < 2 {
				return nil, lqerrors.NewGeneral("no column %q", name)
			}
			return value.NewText(strings.Split(rows[1], ",")[col]), nil
		}))

	s := storemem.New(ast.Key{})
	key := ast.NewKey("data", "input.csv")
	md := metadata.New().WithTypeIdentifier("bytes").WithMediaType("text/csv")
	if err := s.Set(context.Background(), key, []byte("x,y\n1,2"), md); err != nil {
		t.Fatalf("Set: %v", err)
	}

	env := New(r, ex, WithStore(s), WithMetrics(NewMetrics(nil)))

	st, err := env.Evaluate(context.Background(), "-R/data/input.csv/-/to_table/column-y")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if out, _ := st.Data.TryString(); out != "2" {
		t.Fatalf("unexpected result: %v", st.Data)
	}
}
