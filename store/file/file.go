// Package file implements a filesystem-backed store backend rooted at a
// base directory on disk, with a glob-routed IsSupported check and an
// fsnotify watch that invalidates the directory-listing cache when files
// change underneath the process.
package file

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"github.com/orest-d/liquer-go/ast"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
)

const storeName = "file"

// Store serves resources from files under Root. Metadata is not
// persisted separately: media type is derived from the filename
// extension, exactly like metadata.WithFilename.
type Store struct {
	Root string

	// scope, when non-nil, restricts IsSupported to keys whose encoded
	// form matches the glob pattern (e.g. "data/**" to claim only a
	// subtree of the overall key space in a layered store).
	scope glob.Glob

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dirCache map[string][]string
}

// New returns a Store rooted at root. If scopePattern is non-empty, only
// keys matching it are claimed by IsSupported.
func New(root string, scopePattern string) (*Store, error) {
	s := &Store{Root: root, dirCache: map[string][]string{}}
	if scopePattern != "" {
		g, err := glob.Compile(scopePattern, '/')
		if err != nil {
			return nil, lqerrors.NewGeneral("invalid store scope pattern %q: %v", scopePattern, err)
		}
		s.scope = g
	}
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		s.watcher = watcher
		_ = watcher.Add(root)
		go s.watchLoop()
	}
	return s, nil
}

// Close stops the filesystem watch. Safe to call on a Store built
// without a working watcher.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

func (s *Store) watchLoop() {
	for event := range s.watcher.Events {
		dir := filepath.Dir(event.Name)
		s.mu.Lock()
		delete(s.dirCache, dir)
		s.mu.Unlock()
	}
}

func (s *Store) path(key ast.Key) string {
	parts := make([]string, len(key.Names))
	for i, n := range key.Names {
		parts[i] = n.Name
	}
	return filepath.Join(append([]string{s.Root}, parts...)...)
}

func (s *Store) Get(ctx context.Context, key ast.Key) ([]byte, metadata.Metadata, error) {
	data, err := s.GetBytes(ctx, key)
	if err != nil {
		return nil, metadata.Metadata{}, err
	}
	md := metadata.New().WithFilename(key.Filename())
	return data, md, nil
}

func (s *Store) GetBytes(ctx context.Context, key ast.Key) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lqerrors.NewKeyNotFound(key.Encode(), storeName)
		}
		return nil, lqerrors.NewKeyReadError(key.Encode(), storeName, err)
	}
	return data, nil
}

func (s *Store) GetMetadata(ctx context.Context, key ast.Key) (metadata.Metadata, error) {
	_, md, err := s.Get(ctx, key)
	return md, err
}

func (s *Store) Set(ctx context.Context, key ast.Key, data []byte, md metadata.Metadata) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return lqerrors.NewKeyWriteError(key.Encode(), storeName, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return lqerrors.NewKeyWriteError(key.Encode(), storeName, err)
	}
	return nil
}

// SetMetadata is a no-op: this backend derives all metadata it can serve
// from the filename itself and has no side-channel to persist more.
func (s *Store) SetMetadata(ctx context.Context, key ast.Key, md metadata.Metadata) error {
	return nil
}

func (s *Store) Remove(ctx context.Context, key ast.Key) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return lqerrors.NewKeyWriteError(key.Encode(), storeName, err)
	}
	return nil
}

func (s *Store) RemoveDir(ctx context.Context, key ast.Key) error {
	if err := os.RemoveAll(s.path(key)); err != nil {
		return lqerrors.NewKeyWriteError(key.Encode(), storeName, err)
	}
	return nil
}

func (s *Store) Contains(ctx context.Context, key ast.Key) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, lqerrors.NewKeyReadError(key.Encode(), storeName, err)
}

func (s *Store) IsDir(ctx context.Context, key ast.Key) (bool, error) {
	info, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, lqerrors.NewKeyReadError(key.Encode(), storeName, err)
	}
	return info.IsDir(), nil
}

func (s *Store) Keys(ctx context.Context) ([]ast.Key, error) {
	return s.ListDirKeysDeep(ctx, ast.Key{})
}

func (s *Store) ListDir(ctx context.Context, key ast.Key) ([]string, error) {
	dir := s.path(key)
	s.mu.Lock()
	if cached, ok := s.dirCache[dir]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lqerrors.NewKeyNotFound(key.Encode(), storeName)
		}
		return nil, lqerrors.NewKeyReadError(key.Encode(), storeName, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)

	s.mu.Lock()
	s.dirCache[dir] = names
	s.mu.Unlock()
	return names, nil
}

func (s *Store) ListDirKeys(ctx context.Context, key ast.Key) ([]ast.Key, error) {
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

func (s *Store) ListDirKeysDeep(ctx context.Context, key ast.Key) ([]ast.Key, error) {
	var out []ast.Key
	var walk func(ast.Key) error
	walk = func(k ast.Key) error {
		isDir, err := s.IsDir(ctx, k)
		if err != nil {
			return err
		}
		if !isDir {
			out = append(out, k)
			return nil
		}
		names, err := s.ListDir(ctx, k)
		if err != nil {
			return err
		}
		for _, name := range names {
			if err := walk(k.JoinName(name)); err != nil {
				return err
			}
		}
		return nil
	}
	isRootDir, err := s.IsDir(ctx, key)
	if err != nil {
		return nil, err
	}
	if !isRootDir {
		return nil, nil
	}
	names, err := s.ListDir(ctx, key)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := walk(key.JoinName(name)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) MakeDir(ctx context.Context, key ast.Key) error {
	if err := os.MkdirAll(s.path(key), 0o755); err != nil {
		return lqerrors.NewKeyWriteError(key.Encode(), storeName, err)
	}
	return nil
}

func (s *Store) IsSupported(key ast.Key) bool {
	if s.scope == nil {
		return true
	}
	return s.scope.Match(strings.TrimPrefix(key.Encode(), "/"))
}

func (s *Store) KeyPrefix() ast.Key { return ast.Key{} }
