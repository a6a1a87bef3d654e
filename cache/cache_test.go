package cache

import (
	"context"
	"testing"

	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
)

func TestNoOpCacheAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	c := NoOpCache{}

	if _, err := c.GetBinary(ctx, "q"); !lqerrors.IsCode(err, lqerrors.General) {
		t.Fatalf("GetBinary: expected a cache miss error, got %v", err)
	}
	if _, err := c.GetMetadata(ctx, "q"); !lqerrors.IsCode(err, lqerrors.General) {
		t.Fatalf("GetMetadata: expected a cache miss error, got %v", err)
	}

	if ok, err := c.Contains(ctx, "q"); err != nil || ok {
		t.Fatalf("Contains = %v, %v", ok, err)
	}
	if keys, err := c.Keys(ctx); err != nil || keys != nil {
		t.Fatalf("Keys = %v, %v", keys, err)
	}

	if err := c.SetBinary(ctx, []byte("data"), metadata.New()); err != nil {
		t.Fatalf("SetBinary: %v", err)
	}
	if err := c.SetMetadata(ctx, metadata.New()); err != nil {
		t.Fatalf("SetMetadata: %v", err)
	}
	if err := c.Remove(ctx, "q"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if ok, _ := c.Contains(ctx, "q"); ok {
		t.Fatal("expected SetBinary on a NoOpCache to still miss afterward")
	}
}
