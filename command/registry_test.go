package command

import (
	"testing"

	"github.com/orest-d/liquer-go/position"
	"github.com/orest-d/liquer-go/value"
)

func greetMetadata() CommandMetadata {
	return CommandMetadata{
		Realm: "", Namespace: "root", Name: "greet",
		StateArgument: &ArgInfo{Name: "state", Type: TypeString},
		Arguments: []ArgInfo{
			{Name: "who", Type: TypeString, Default: NoDefaultValue},
		},
	}
}

func TestRegisterAndFind(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(greetMetadata()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	cm, ok := r.FindCommandInNamespaces("", []string{"mymodule", "root"}, "greet")
	if !ok || cm.Name != "greet" {
		t.Fatalf("expected to find greet, got %v, %v", cm, ok)
	}
}

func TestRegisterDuplicateRejected(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(greetMetadata()); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(greetMetadata()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestFindCommandInNamespacesOrderMatters(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(CommandMetadata{Realm: "", Namespace: "a", Name: "pick"})
	_ = r.Register(CommandMetadata{Realm: "", Namespace: "b", Name: "pick"})
	cm, ok := r.FindCommandInNamespaces("", []string{"b", "a"}, "pick")
	if !ok || cm.Namespace != "b" {
		t.Fatalf("expected namespace b to win, got %+v", cm)
	}
}

func TestActionNotRegisteredSuggestsCloseName(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(greetMetadata())
	err := r.ActionNotRegistered(position.Unknown, "", []string{"root"}, "greett")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !containsSubstring(err.Error(), "greet") {
		t.Fatalf("expected suggestion mentioning greet, got %v", err)
	}
}

func TestEnumResolve(t *testing.T) {
	e := &Enum{
		Name: "choice",
		Alternatives: []EnumAlternative{
			{Name: "a", Value: value.NewI32(1)},
			{Name: "b", Value: value.NewI32(2)},
		},
	}
	v, ok := e.Resolve("b")
	if !ok {
		t.Fatalf("expected resolve to succeed")
	}
	if i, _ := v.TryI32(); i != 2 {
		t.Fatalf("unexpected resolved value: %v", v)
	}
	if _, ok := e.Resolve("c"); ok {
		t.Fatalf("expected resolve of unknown name to fail without others_allowed")
	}
	e.OthersAllowed = true
	v2, ok := e.Resolve("c")
	if !ok {
		t.Fatalf("expected others_allowed passthrough to succeed")
	}
	if s, _ := v2.TryString(); s != "c" {
		t.Fatalf("unexpected passthrough value: %v", v2)
	}
}

func TestCheckFlagsEnumDefaultMismatch(t *testing.T) {
	r := NewRegistry()
	enum := &Enum{Name: "choice", Alternatives: []EnumAlternative{{Name: "a", Value: value.NewI32(1)}}}
	_ = r.Register(CommandMetadata{
		Realm: "", Namespace: "root", Name: "pick",
		Arguments: []ArgInfo{
			{Name: "choice", Type: TypeEnum, Enum: enum, Default: ValueDefault(value.NewI32(99))},
		},
	})
	errs := r.Check()
	if !errs.HasErrors() {
		t.Fatalf("expected Check to flag the mismatched enum default")
	}
}

func TestCheckPassesCleanRegistry(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(greetMetadata())
	if errs := r.Check(); errs.HasErrors() {
		t.Fatalf("unexpected Check errors: %v", errs)
	}
}

func containsSubstring(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
