package position

import (
	"errors"
	"testing"
)

func TestUnknownPosition(t *testing.T) {
	if Unknown.IsKnown() {
		t.Fatal("Unknown must not be known")
	}
	if Unknown.String() != "?" {
		t.Fatalf("String() = %q", Unknown.String())
	}
}

func TestNewPosition(t *testing.T) {
	p := New(10, 2, 5)
	if !p.IsKnown() {
		t.Fatal("New must produce a known position")
	}
	if p.String() != "2:5" {
		t.Fatalf("String() = %q, want %q", p.String(), "2:5")
	}
}

func TestErrorf(t *testing.T) {
	p := New(0, 1, 1)
	err := p.Errorf("bad token %q", "/")
	want := `1:1: bad token "/"`
	if err.Error() != want {
		t.Fatalf("Errorf = %q, want %q", err.Error(), want)
	}
}

func TestWrapf(t *testing.T) {
	p := New(0, 1, 1)
	cause := errors.New("underlying")
	err := p.Wrapf(cause, "while parsing")
	want := `1:1: while parsing: underlying`
	if err.Error() != want {
		t.Fatalf("Wrapf = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Fatal("Wrapf must preserve the cause for errors.Is")
	}
}
