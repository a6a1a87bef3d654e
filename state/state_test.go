package state

import (
	"testing"

	"github.com/orest-d/liquer-go/value"
)

func TestEmptyStateIsNoneAndNotError(t *testing.T) {
	s := Empty()
	if !s.Data.IsNone() {
		t.Fatalf("expected None data, got %v", s.Data)
	}
	if s.IsError() {
		t.Fatalf("fresh state must not be an error")
	}
}

func TestWithDataPreservesMetadata(t *testing.T) {
	s := Empty().WithMetadata(Empty().Metadata.Info("hi"))
	next := s.WithData(value.NewText("x"))
	if len(next.Metadata.Log) != 1 {
		t.Fatalf("expected metadata to survive WithData: %+v", next.Metadata)
	}
	if s.Data.IsNone() == false {
		t.Fatalf("original state must be unaffected")
	}
}

func TestWithMetadataPreservesData(t *testing.T) {
	s := Empty().WithData(value.NewI32(7))
	next := s.WithMetadata(s.Metadata.Error("boom"))
	if i, _ := next.Data.TryI32(); i != 7 {
		t.Fatalf("expected data to survive WithMetadata: %v", next.Data)
	}
	if !next.IsError() {
		t.Fatalf("expected error state")
	}
}
