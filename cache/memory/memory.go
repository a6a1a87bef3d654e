// Package memory implements the inter-query cache with a bounded
// in-memory backend: a config-driven capacity (a number of entries) with
// least-recently-used eviction.
package memory

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
)

type entry struct {
	data []byte
	md   metadata.Metadata
}

// Cache is a bounded LRU-backed inter-query cache. Construction cannot
// fail for a positive capacity, but New still returns an error to mirror
// lru.New's own fallible constructor and to leave room for a future
// config-driven backend that can fail on bad config.
type Cache struct {
	mu sync.Mutex
	c  *lru.Cache[string, entry]
}

// New returns a Cache bounded to capacity entries.
func New(capacity int) (*Cache, error) {
	c, err := lru.New[string, entry](capacity)
	if err != nil {
		return nil, lqerrors.NewGeneral("failed to construct cache: %v", err)
	}
	return &Cache{c: c}, nil
}

func (c *Cache) GetBinary(ctx context.Context, query string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.c.Get(query)
	if !ok {
		return nil, lqerrors.NewGeneral("cache miss for query %q", query)
	}
	return e.data, nil
}

func (c *Cache) GetMetadata(ctx context.Context, query string) (metadata.Metadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.c.Get(query)
	if !ok {
		return metadata.Metadata{}, lqerrors.NewGeneral("cache miss for query %q", query)
	}
	return e.md, nil
}

func (c *Cache) SetBinary(ctx context.Context, data []byte, md metadata.Metadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, _ := c.c.Peek(md.Query)
	e.data = data
	e.md = md
	c.c.Add(md.Query, e)
	return nil
}

func (c *Cache) SetMetadata(ctx context.Context, md metadata.Metadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, _ := c.c.Peek(md.Query)
	e.md = md
	c.c.Add(md.Query, e)
	return nil
}

func (c *Cache) Remove(ctx context.Context, query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.c.Remove(query)
	return nil
}

func (c *Cache) Contains(ctx context.Context, query string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.Contains(query), nil
}

func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.Keys(), nil
}

func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.c.Purge()
	return nil
}
