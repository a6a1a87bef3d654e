package store_test

import (
	"context"
	"testing"

	"github.com/orest-d/liquer-go/ast"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
	. "github.com/orest-d/liquer-go/store"
	"github.com/orest-d/liquer-go/store/memory"
)

func TestOverlayReadsRouteByIsSupported(t *testing.T) {
	upper := memory.New(ast.NewKey("upper"))
	lower := memory.New(ast.Key{})
	ctx := context.Background()

	if err := lower.Set(ctx, ast.NewKey("shared.txt"), []byte("from lower"), metadata.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	o := WithOverlay(upper, lower)

	data, err := o.GetBytes(ctx, ast.NewKey("shared.txt"))
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if string(data) != "from lower" {
		t.Fatalf("GetBytes = %q, want a read routed to lower", data)
	}
}

func TestOverlayWritesAlwaysGoToUpper(t *testing.T) {
	upper := memory.New(ast.NewKey("upper"))
	lower := memory.New(ast.Key{})
	ctx := context.Background()
	key := ast.NewKey("upper", "out.txt")

	o := WithOverlay(upper, lower)
	if err := o.Set(ctx, key, []byte("written"), metadata.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := lower.GetBytes(ctx, key); !lqerrors.IsNotFound(err) {
		t.Fatalf("expected lower to be untouched, got err=%v", err)
	}
	data, err := upper.GetBytes(ctx, key)
	if err != nil || string(data) != "written" {
		t.Fatalf("GetBytes = %q, %v", data, err)
	}
}

func TestOverlayKeysMergesBothLayersPreferringUpperOnOverlap(t *testing.T) {
	upper := memory.New(ast.Key{})
	lower := memory.New(ast.Key{})
	ctx := context.Background()

	if err := upper.Set(ctx, ast.NewKey("both.txt"), []byte("upper version"), metadata.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := lower.Set(ctx, ast.NewKey("both.txt"), []byte("lower version"), metadata.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := lower.Set(ctx, ast.NewKey("only-lower.txt"), []byte("x"), metadata.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	o := WithOverlay(upper, lower)
	keys, err := o.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("Keys = %v, want 2 entries", keys)
	}
}

func TestFallbackUsesSecondOnlyOnNotFound(t *testing.T) {
	first := memory.New(ast.Key{})
	second := memory.New(ast.Key{})
	ctx := context.Background()

	if err := second.Set(ctx, ast.NewKey("only-second.txt"), []byte("from second"), metadata.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	f := WithFallback(first, second)

	data, err := f.GetBytes(ctx, ast.NewKey("only-second.txt"))
	if err != nil || string(data) != "from second" {
		t.Fatalf("GetBytes = %q, %v", data, err)
	}

	if err := first.Set(ctx, ast.NewKey("both.txt"), []byte("from first"), metadata.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := second.Set(ctx, ast.NewKey("both.txt"), []byte("from second"), metadata.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, err = f.GetBytes(ctx, ast.NewKey("both.txt"))
	if err != nil || string(data) != "from first" {
		t.Fatalf("GetBytes = %q, %v, want first to win when it has the key", data, err)
	}
}

func TestFallbackWritesGoOnlyToFirst(t *testing.T) {
	first := memory.New(ast.Key{})
	second := memory.New(ast.Key{})
	ctx := context.Background()
	key := ast.NewKey("out.txt")

	f := WithFallback(first, second)
	if err := f.Set(ctx, key, []byte("written"), metadata.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := second.GetBytes(ctx, key); !lqerrors.IsNotFound(err) {
		t.Fatalf("expected second to be untouched, got err=%v", err)
	}
}

func TestWritesNotSupported(t *testing.T) {
	w := WritesNotSupported{StoreName: "readonly"}
	ctx := context.Background()
	key := ast.NewKey("x")

	if err := w.Set(ctx, key, nil, metadata.New()); !lqerrors.IsCode(err, lqerrors.KeyWriteError) {
		t.Fatalf("Set: expected KeyWriteError, got %v", err)
	}
	if err := w.MakeDir(ctx, key); !lqerrors.IsCode(err, lqerrors.KeyWriteError) {
		t.Fatalf("MakeDir: expected KeyWriteError, got %v", err)
	}
}

func TestListDirKeysDefaultAndDeep(t *testing.T) {
	s := memory.New(ast.Key{})
	ctx := context.Background()

	for _, name := range []string{"dir/a.txt", "dir/sub/b.txt", "top.txt"} {
		if err := s.Set(ctx, ast.ParseKey(name), []byte("x"), metadata.New()); err != nil {
			t.Fatalf("Set %s: %v", name, err)
		}
	}

	flat, err := ListDirKeysDefault(ctx, s, ast.ParseKey("dir"))
	if err != nil {
		t.Fatalf("ListDirKeysDefault: %v", err)
	}
	if len(flat) != 2 {
		t.Fatalf("ListDirKeysDefault = %v, want 2 immediate entries", flat)
	}

	deep, err := ListDirKeysDeepDefault(ctx, s, ast.Key{})
	if err != nil {
		t.Fatalf("ListDirKeysDeepDefault: %v", err)
	}
	if len(deep) != 3 {
		t.Fatalf("ListDirKeysDeepDefault = %v, want 3 entries total", deep)
	}
}
