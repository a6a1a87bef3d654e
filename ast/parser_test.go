package ast

import (
	"testing"

	lqerrors "github.com/orest-d/liquer-go/errors"
)

func mustParse(t *testing.T, q string) *Query {
	t.Helper()
	parsed, err := Parse(q)
	if err != nil {
		t.Fatalf("Parse(%q) = %v", q, err)
	}
	return parsed
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"hello/greet-world",
		"hello/greet-world/out.txt",
		"pick-b",
		"-R/data/input.csv/-/to_table/column-y",
		"ns-math-stats/add-1-2",
		"action-~X~hello/greet-world~E",
		"action-~_escaped~.space",
		"/absolute/query-with-param",
	}
	for _, c := range cases {
		q := mustParse(t, c)
		encoded := q.Encode()
		reparsed, err := Parse(encoded)
		if err != nil {
			t.Fatalf("Parse(%q) (round trip of %q) = %v", encoded, c, err)
		}
		if !q.Equal(reparsed) {
			t.Errorf("round-trip mismatch for %q: first=%q second=%q", c, q.Encode(), reparsed.Encode())
		}
	}
}

func TestParseSimpleAction(t *testing.T) {
	q := mustParse(t, "hello")
	if !q.IsPureActionChain() {
		t.Fatalf("expected pure action chain")
	}
	seg := q.Segments[0].(*TransformQuerySegment)
	if len(seg.Actions) != 1 || seg.Actions[0].Name != "hello" {
		t.Fatalf("unexpected segment: %+v", seg)
	}
}

func TestParseActionWithParameter(t *testing.T) {
	q := mustParse(t, "hello/greet-world")
	seg := q.Segments[0].(*TransformQuerySegment)
	if len(seg.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(seg.Actions))
	}
	greet := seg.Actions[1]
	if greet.Name != "greet" || len(greet.Parameters) != 1 || greet.Parameters[0].Text != "world" {
		t.Fatalf("unexpected action: %+v", greet)
	}
}

func TestParseFilename(t *testing.T) {
	q := mustParse(t, "hello/greet-world/out.txt")
	seg := q.Segments[0].(*TransformQuerySegment)
	if seg.Filename == nil || seg.Filename.Name != "out.txt" {
		t.Fatalf("expected filename out.txt, got %+v", seg.Filename)
	}
	if len(seg.Actions) != 2 {
		t.Fatalf("expected 2 actions before filename, got %d", len(seg.Actions))
	}
}

func TestParseResourceThenTransform(t *testing.T) {
	q := mustParse(t, "-R/data/input.csv/-/to_table/column-y")
	if len(q.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(q.Segments))
	}
	res, ok := q.Segments[0].(*ResourceQuerySegment)
	if !ok {
		t.Fatalf("expected resource segment, got %T", q.Segments[0])
	}
	if res.Key.Encode() != "data/input.csv" {
		t.Fatalf("unexpected key: %v", res.Key.Encode())
	}
	trans, ok := q.Segments[1].(*TransformQuerySegment)
	if !ok {
		t.Fatalf("expected transform segment, got %T", q.Segments[1])
	}
	if len(trans.Actions) != 2 || trans.Actions[0].Name != "to_table" {
		t.Fatalf("unexpected actions: %+v", trans.Actions)
	}
}

func TestParseLinkParameter(t *testing.T) {
	q := mustParse(t, "greet-~X~hello/world~E")
	seg := q.Segments[0].(*TransformQuerySegment)
	param := seg.Actions[0].Parameters[0]
	if !param.IsLink() {
		t.Fatalf("expected link parameter")
	}
	if param.Link.Encode() != "hello/world" {
		t.Fatalf("unexpected inner query: %v", param.Link.Encode())
	}
}

func TestParseEscapes(t *testing.T) {
	q := mustParse(t, "greet-~_dash~.space~~tilde")
	param := q.Segments[0].(*TransformQuerySegment).Actions[0].Parameters[0]
	if param.Text != "-dash space~tilde" {
		t.Fatalf("unexpected decode: %q", param.Text)
	}
}

func TestPredecessor(t *testing.T) {
	q := mustParse(t, "hello/greet-world/out.txt")
	rest, suffix := q.Predecessor()
	if suffix.Encode() != "out.txt" {
		t.Fatalf("unexpected suffix: %v", suffix.Encode())
	}
	if rest.Encode() != "hello/greet-world" {
		t.Fatalf("unexpected predecessor: %v", rest.Encode())
	}
	rest2, suffix2 := rest.Predecessor()
	if suffix2.Encode() != "greet-world" {
		t.Fatalf("unexpected suffix2: %v", suffix2.Encode())
	}
	if rest2.Encode() != "hello" {
		t.Fatalf("unexpected predecessor2: %v", rest2.Encode())
	}
	rest3, suffix3 := rest2.Predecessor()
	if rest3 != nil {
		t.Fatalf("expected nil predecessor at the root, got %v", rest3)
	}
	if suffix3.Encode() != "hello" {
		t.Fatalf("unexpected suffix3: %v", suffix3.Encode())
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("greet-~Q")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	perr, ok := err.(*lqerrors.Error)
	if !ok || perr.Code != lqerrors.ParseError || !perr.Position.IsKnown() {
		t.Fatalf("expected a ParseError with a known position, got %v", err)
	}
}

func TestParseResourceHeaderMetaParameter(t *testing.T) {
	q := mustParse(t, "-R-meta/data/input.csv")
	res := q.Segments[0].(*ResourceQuerySegment)
	if res.Header == nil || len(res.Header.Parameters) != 1 || res.Header.Parameters[0].Text != "meta" {
		t.Fatalf("unexpected header: %+v", res.Header)
	}
	if res.Key.Encode() != "data/input.csv" {
		t.Fatalf("unexpected key: %v", res.Key.Encode())
	}
}

func TestParseTransformHeaderNamespace(t *testing.T) {
	q := mustParse(t, "--mynamespace/action")
	seg := q.Segments[0].(*TransformQuerySegment)
	if seg.Header == nil || seg.Header.Level != 1 || seg.Header.Name != "mynamespace" {
		t.Fatalf("unexpected header: %+v", seg.Header)
	}
}
