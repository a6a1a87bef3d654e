package memory

import (
	"context"
	"testing"

	"github.com/orest-d/liquer-go/metadata"
)

func TestSetGetBinaryRoundTrip(t *testing.T) {
	c, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	md := metadata.New().WithQuery("hello/greet-world")
	if err := c.SetBinary(ctx, []byte("Hello world!"), md); err != nil {
		t.Fatalf("SetBinary: %v", err)
	}
	data, err := c.GetBinary(ctx, "hello/greet-world")
	if err != nil {
		t.Fatalf("GetBinary: %v", err)
	}
	if string(data) != "Hello world!" {
		t.Fatalf("unexpected data: %q", data)
	}
	gotMd, err := c.GetMetadata(ctx, "hello/greet-world")
	if err != nil || gotMd.Query != md.Query {
		t.Fatalf("GetMetadata: %v, %+v", err, gotMd)
	}
}

func TestCacheMissReturnsError(t *testing.T) {
	c, _ := New(8)
	if _, err := c.GetBinary(context.Background(), "nope"); err == nil {
		t.Fatalf("expected cache miss error")
	}
}

func TestRemoveAndContains(t *testing.T) {
	c, _ := New(8)
	ctx := context.Background()
	md := metadata.New().WithQuery("q1")
	_ = c.SetBinary(ctx, []byte("x"), md)
	if ok, _ := c.Contains(ctx, "q1"); !ok {
		t.Fatalf("expected contains true")
	}
	_ = c.Remove(ctx, "q1")
	if ok, _ := c.Contains(ctx, "q1"); ok {
		t.Fatalf("expected contains false after remove")
	}
}

func TestEvictionBoundsSize(t *testing.T) {
	c, _ := New(2)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		q := string(rune('a' + i))
		_ = c.SetBinary(ctx, []byte(q), metadata.New().WithQuery(q))
	}
	keys, _ := c.Keys(ctx)
	if len(keys) != 2 {
		t.Fatalf("expected bounded cache to hold 2 keys, got %d: %v", len(keys), keys)
	}
}
