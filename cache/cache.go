// Package cache defines the inter-query cache contract: memoized
// (bytes, metadata) pairs keyed by a query's canonical fingerprint.
// Implementations must be safe for concurrent use by multiple
// evaluations.
package cache

import (
	"context"

	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
)

func errCacheMiss(query string) error {
	return lqerrors.NewGeneral("cache miss for query %q", query)
}

// Cache is the contract the interpreter consults before evaluating a
// query and writes into after evaluating it successfully.
type Cache interface {
	GetBinary(ctx context.Context, query string) ([]byte, error)
	GetMetadata(ctx context.Context, query string) (metadata.Metadata, error)

	// SetBinary stores data under the fingerprint carried in md.Query.
	SetBinary(ctx context.Context, data []byte, md metadata.Metadata) error
	SetMetadata(ctx context.Context, md metadata.Metadata) error

	Remove(ctx context.Context, query string) error
	Contains(ctx context.Context, query string) (bool, error)
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// NoOpCache never stores anything; every lookup misses. It is the
// correct cache for a deployment that wants no memoization.
type NoOpCache struct{}

func (NoOpCache) GetBinary(ctx context.Context, query string) ([]byte, error) {
	return nil, errCacheMiss(query)
}
func (NoOpCache) GetMetadata(ctx context.Context, query string) (metadata.Metadata, error) {
	return metadata.Metadata{}, errCacheMiss(query)
}
func (NoOpCache) SetBinary(ctx context.Context, data []byte, md metadata.Metadata) error { return nil }
func (NoOpCache) SetMetadata(ctx context.Context, md metadata.Metadata) error            { return nil }
func (NoOpCache) Remove(ctx context.Context, query string) error                         { return nil }
func (NoOpCache) Contains(ctx context.Context, query string) (bool, error)               { return false, nil }
func (NoOpCache) Keys(ctx context.Context) ([]string, error)                             { return nil, nil }
func (NoOpCache) Clear(ctx context.Context) error                                        { return nil }
