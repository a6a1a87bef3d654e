// Package store defines the key/value resource contract the interpreter
// reads resources through and writes results back to. Stores may be
// layered: an overlay directs writes to an upper store and reads to
// whichever layer reports the key as supported.
package store

import (
	"context"

	"github.com/orest-d/liquer-go/ast"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
)

// Store is the resource contract the interpreter's GetResource and
// GetResourceMetadata steps, and a command's result-caching side effect,
// go through.
type Store interface {
	Get(ctx context.Context, key ast.Key) ([]byte, metadata.Metadata, error)
	GetBytes(ctx context.Context, key ast.Key) ([]byte, error)
	GetMetadata(ctx context.Context, key ast.Key) (metadata.Metadata, error)

	Set(ctx context.Context, key ast.Key, data []byte, md metadata.Metadata) error
	SetMetadata(ctx context.Context, key ast.Key, md metadata.Metadata) error

	Remove(ctx context.Context, key ast.Key) error
	RemoveDir(ctx context.Context, key ast.Key) error

	Contains(ctx context.Context, key ast.Key) (bool, error)
	IsDir(ctx context.Context, key ast.Key) (bool, error)

	Keys(ctx context.Context) ([]ast.Key, error)
	ListDir(ctx context.Context, key ast.Key) ([]string, error)
	ListDirKeys(ctx context.Context, key ast.Key) ([]ast.Key, error)
	ListDirKeysDeep(ctx context.Context, key ast.Key) ([]ast.Key, error)

	MakeDir(ctx context.Context, key ast.Key) error

	// IsSupported reports whether this store is willing to serve key at
	// all, used by overlay/fallback combinators to route a request to
	// the right layer without probing with a real Get.
	IsSupported(key ast.Key) bool

	// KeyPrefix returns the key this store is rooted under. The layered
	// stores (overlay, fallback) pass keys to their layers unchanged and
	// report an empty prefix themselves.
	KeyPrefix() ast.Key
}

// RecipeStore is an optional capability a Store may additionally
// satisfy: when a fetched key's metadata has Status == StatusRecipe,
// the interpreter prefers ResolveRecipe over its own generic
// evaluate-and-write-back fallback, letting a backend that already
// knows how to compute its own recipes (e.g. by delegating to a remote
// evaluation service) short-circuit the interpreter's default.
type RecipeStore interface {
	Store
	ResolveRecipe(ctx context.Context, key ast.Key, md metadata.Metadata) ([]byte, metadata.Metadata, error)
}

// WritesNotSupported is an embeddable default for read-only backends.
type WritesNotSupported struct{ StoreName string }

func (w WritesNotSupported) Set(ctx context.Context, key ast.Key, data []byte, md metadata.Metadata) error {
	return lqerrors.NewKeyWriteError(key.Encode(), w.StoreName, errNotSupported)
}

func (w WritesNotSupported) SetMetadata(ctx context.Context, key ast.Key, md metadata.Metadata) error {
	return lqerrors.NewKeyWriteError(key.Encode(), w.StoreName, errNotSupported)
}

func (w WritesNotSupported) Remove(ctx context.Context, key ast.Key) error {
	return lqerrors.NewKeyWriteError(key.Encode(), w.StoreName, errNotSupported)
}

func (w WritesNotSupported) RemoveDir(ctx context.Context, key ast.Key) error {
	return lqerrors.NewKeyWriteError(key.Encode(), w.StoreName, errNotSupported)
}

func (w WritesNotSupported) MakeDir(ctx context.Context, key ast.Key) error {
	return lqerrors.NewKeyWriteError(key.Encode(), w.StoreName, errNotSupported)
}

var errNotSupported = lqerrors.NewNotSupported("writes are not supported by this store")

// ListDirKeysDeepDefault implements ListDirKeysDeep in terms of ListDir
// and IsDir, for backends that have no cheaper way to enumerate
// recursively. Backends call this from their own ListDirKeysDeep method.
func ListDirKeysDeepDefault(ctx context.Context, s Store, key ast.Key) ([]ast.Key, error) {
	var out []ast.Key
	var walk func(ast.Key) error
	walk = func(k ast.Key) error {
		names, err := s.ListDir(ctx, k)
		if err != nil {
			return err
		}
		for _, name := range names {
			child := k.JoinName(name)
			isDir, err := s.IsDir(ctx, child)
			if err != nil {
				return err
			}
			if isDir {
				if err := walk(child); err != nil {
					return err
				}
				continue
			}
			out = append(out, child)
		}
		return nil
	}
	if err := walk(key); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDirKeysDefault implements ListDirKeys in terms of ListDir.
func ListDirKeysDefault(ctx context.Context, s Store, key ast.Key) ([]ast.Key, error) {
	names, err := s.ListDir(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make([]ast.Key, len(names))
	for i, name := range names {
		out[i] = key.JoinName(name)
	}
	return out, nil
}
