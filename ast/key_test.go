package ast

import "testing"

func TestKeyRoundTrip(t *testing.T) {
	cases := []string{"", "a", "a/b/c", "data/input.csv"}
	for _, c := range cases {
		k := ParseKey(c)
		if k.Encode() != c {
			t.Errorf("ParseKey(%q).Encode() = %q", c, k.Encode())
		}
	}
}

func TestKeyJoinParent(t *testing.T) {
	k := NewKey("a", "b")
	joined := k.JoinName("c")
	if joined.Encode() != "a/b/c" {
		t.Fatalf("unexpected join: %v", joined.Encode())
	}
	if !joined.Parent().Equal(k) {
		t.Fatalf("join(a).parent() != self: %v != %v", joined.Parent().Encode(), k.Encode())
	}
}

func TestKeyHasPrefix(t *testing.T) {
	k := NewKey("a", "b", "c")
	if !k.HasPrefix(NewKey("a", "b")) {
		t.Fatalf("expected prefix match")
	}
	if k.HasPrefix(NewKey("a", "x")) {
		t.Fatalf("expected prefix mismatch")
	}
}

func TestKeyFilenameExtension(t *testing.T) {
	k := NewKey("dir", "input.csv")
	if k.Filename() != "input.csv" {
		t.Fatalf("unexpected filename: %v", k.Filename())
	}
	if k.Names[len(k.Names)-1].Extension() != "csv" {
		t.Fatalf("unexpected extension: %v", k.Names[len(k.Names)-1].Extension())
	}
}

func TestKeyToAbsolute(t *testing.T) {
	cwd := NewKey("a", "b")
	rel := NewKey("c")
	if rel.ToAbsolute(cwd).Encode() != "a/b/c" {
		t.Fatalf("unexpected absolute key: %v", rel.ToAbsolute(cwd).Encode())
	}
}
