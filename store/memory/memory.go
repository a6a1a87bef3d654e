// Package memory implements an in-process store backend, grounded on the
// map-of-paths shape of a classic in-memory key/value store: every key is
// a flat map entry, and directories are inferred from key prefixes rather
// than tracked as separate nodes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/orest-d/liquer-go/ast"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
	"github.com/orest-d/liquer-go/store"
)

const storeName = "memory"

type entry struct {
	data []byte
	md   metadata.Metadata
}

// Store is a mutex-guarded in-memory Store backend.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	prefix  ast.Key
}

// New returns an empty Store rooted at prefix (ast.Key{} for the root).
func New(prefix ast.Key) *Store {
	return &Store{entries: map[string]entry{}, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key ast.Key) ([]byte, metadata.Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key.Encode()]
	if !ok {
		return nil, metadata.Metadata{}, lqerrors.NewKeyNotFound(key.Encode(), storeName)
	}
	return e.data, e.md, nil
}

func (s *Store) GetBytes(ctx context.Context, key ast.Key) ([]byte, error) {
	data, _, err := s.Get(ctx, key)
	return data, err
}

func (s *Store) GetMetadata(ctx context.Context, key ast.Key) (metadata.Metadata, error) {
	_, md, err := s.Get(ctx, key)
	return md, err
}

func (s *Store) Set(ctx context.Context, key ast.Key, data []byte, md metadata.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key.Encode()] = entry{data: data, md: md}
	return nil
}

func (s *Store) SetMetadata(ctx context.Context, key ast.Key, md metadata.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key.Encode()]
	e.md = md
	s.entries[key.Encode()] = e
	return nil
}

func (s *Store) Remove(ctx context.Context, key ast.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key.Encode())
	return nil
}

func (s *Store) RemoveDir(ctx context.Context, key ast.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := key.Encode()
	for k := range s.entries {
		if k == prefix || strings.HasPrefix(k, prefix+"/") {
			delete(s.entries, k)
		}
	}
	return nil
}

func (s *Store) Contains(ctx context.Context, key ast.Key) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key.Encode()]
	return ok, nil
}

func (s *Store) IsDir(ctx context.Context, key ast.Key) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefix := key.Encode()
	if prefix == "" {
		return len(s.entries) > 0, nil
	}
	for k := range s.entries {
		if strings.HasPrefix(k, prefix+"/") {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Keys(ctx context.Context) ([]ast.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ast.Key, 0, len(s.entries))
	for k := range s.entries {
		out = append(out, ast.ParseKey(k))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Encode() < out[j].Encode() })
	return out, nil
}

func (s *Store) ListDir(ctx context.Context, key ast.Key) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefix := key.Encode()
	seen := map[string]bool{}
	var names []string
	for k := range s.entries {
		rest := k
		if prefix != "" {
			if !strings.HasPrefix(k, prefix+"/") {
				continue
			}
			rest = k[len(prefix)+1:]
		}
		if rest == "" {
			continue
		}
		name := rest
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			name = rest[:idx]
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) ListDirKeys(ctx context.Context, key ast.Key) ([]ast.Key, error) {
	return store.ListDirKeysDefault(ctx, s, key)
}

func (s *Store) ListDirKeysDeep(ctx context.Context, key ast.Key) ([]ast.Key, error) {
	return store.ListDirKeysDeepDefault(ctx, s, key)
}

func (s *Store) MakeDir(ctx context.Context, key ast.Key) error {
	// Directories are implicit from key prefixes; nothing to persist.
	return nil
}

func (s *Store) IsSupported(key ast.Key) bool {
	return key.HasPrefix(s.prefix) || s.prefix.IsEmpty()
}

func (s *Store) KeyPrefix() ast.Key { return s.prefix }
