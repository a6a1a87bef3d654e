package store

import (
	"context"

	"github.com/orest-d/liquer-go/ast"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
)

// overlay routes writes to Upper and reads to whichever of Upper/Lower
// reports the key as supported, preferring Upper on a tie.
type overlay struct {
	Upper, Lower Store
}

// WithOverlay layers upper on top of lower: reads are routed to whichever
// layer's IsSupported accepts the key (upper wins ties), writes always go
// to upper.
func WithOverlay(upper, lower Store) Store {
	return &overlay{Upper: upper, Lower: lower}
}

func (o *overlay) reader(key ast.Key) Store {
	if o.Upper.IsSupported(key) {
		return o.Upper
	}
	return o.Lower
}

func (o *overlay) Get(ctx context.Context, key ast.Key) ([]byte, metadata.Metadata, error) {
	return o.reader(key).Get(ctx, key)
}
func (o *overlay) GetBytes(ctx context.Context, key ast.Key) ([]byte, error) {
	return o.reader(key).GetBytes(ctx, key)
}
func (o *overlay) GetMetadata(ctx context.Context, key ast.Key) (metadata.Metadata, error) {
	return o.reader(key).GetMetadata(ctx, key)
}
func (o *overlay) Set(ctx context.Context, key ast.Key, data []byte, md metadata.Metadata) error {
	return o.Upper.Set(ctx, key, data, md)
}
func (o *overlay) SetMetadata(ctx context.Context, key ast.Key, md metadata.Metadata) error {
	return o.Upper.SetMetadata(ctx, key, md)
}
func (o *overlay) Remove(ctx context.Context, key ast.Key) error {
	return o.Upper.Remove(ctx, key)
}
func (o *overlay) RemoveDir(ctx context.Context, key ast.Key) error {
	return o.Upper.RemoveDir(ctx, key)
}
func (o *overlay) Contains(ctx context.Context, key ast.Key) (bool, error) {
	return o.reader(key).Contains(ctx, key)
}
func (o *overlay) IsDir(ctx context.Context, key ast.Key) (bool, error) {
	return o.reader(key).IsDir(ctx, key)
}
func (o *overlay) Keys(ctx context.Context) ([]ast.Key, error) {
	upperKeys, err := o.Upper.Keys(ctx)
	if err != nil {
		return nil, err
	}
	lowerKeys, err := o.Lower.Keys(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(upperKeys))
	out := make([]ast.Key, 0, len(upperKeys)+len(lowerKeys))
	for _, k := range upperKeys {
		seen[k.Encode()] = true
		out = append(out, k)
	}
	for _, k := range lowerKeys {
		if !seen[k.Encode()] {
			out = append(out, k)
		}
	}
	return out, nil
}
func (o *overlay) ListDir(ctx context.Context, key ast.Key) ([]string, error) {
	return o.reader(key).ListDir(ctx, key)
}
func (o *overlay) ListDirKeys(ctx context.Context, key ast.Key) ([]ast.Key, error) {
	return ListDirKeysDefault(ctx, o, key)
}
func (o *overlay) ListDirKeysDeep(ctx context.Context, key ast.Key) ([]ast.Key, error) {
	return ListDirKeysDeepDefault(ctx, o, key)
}
func (o *overlay) MakeDir(ctx context.Context, key ast.Key) error {
	return o.Upper.MakeDir(ctx, key)
}
func (o *overlay) IsSupported(key ast.Key) bool {
	return o.Upper.IsSupported(key) || o.Lower.IsSupported(key)
}
func (o *overlay) KeyPrefix() ast.Key { return ast.Key{} }

// fallback tries First, and on a KeyNotFound error from First retries
// against Second. Second sees Get/GetBytes/GetMetadata only after a
// KeyNotFound from First, and Contains only when First lacks the key;
// IsDir, Keys, ListDir and writes go only to First.
type fallback struct {
	First, Second Store
}

// WithFallback tries first for reads, falling back to second only when
// first reports KeyNotFound.
func WithFallback(first, second Store) Store {
	return &fallback{First: first, Second: second}
}

func (f *fallback) Get(ctx context.Context, key ast.Key) ([]byte, metadata.Metadata, error) {
	data, md, err := f.First.Get(ctx, key)
	if err != nil && lqerrors.IsNotFound(err) {
		return f.Second.Get(ctx, key)
	}
	return data, md, err
}
func (f *fallback) GetBytes(ctx context.Context, key ast.Key) ([]byte, error) {
	data, err := f.First.GetBytes(ctx, key)
	if err != nil && lqerrors.IsNotFound(err) {
		return f.Second.GetBytes(ctx, key)
	}
	return data, err
}
func (f *fallback) GetMetadata(ctx context.Context, key ast.Key) (metadata.Metadata, error) {
	md, err := f.First.GetMetadata(ctx, key)
	if err != nil && lqerrors.IsNotFound(err) {
		return f.Second.GetMetadata(ctx, key)
	}
	return md, err
}
func (f *fallback) Set(ctx context.Context, key ast.Key, data []byte, md metadata.Metadata) error {
	return f.First.Set(ctx, key, data, md)
}
func (f *fallback) SetMetadata(ctx context.Context, key ast.Key, md metadata.Metadata) error {
	return f.First.SetMetadata(ctx, key, md)
}
func (f *fallback) Remove(ctx context.Context, key ast.Key) error { return f.First.Remove(ctx, key) }
func (f *fallback) RemoveDir(ctx context.Context, key ast.Key) error {
	return f.First.RemoveDir(ctx, key)
}
func (f *fallback) Contains(ctx context.Context, key ast.Key) (bool, error) {
	ok, err := f.First.Contains(ctx, key)
	if err == nil && ok {
		return true, nil
	}
	return f.Second.Contains(ctx, key)
}
func (f *fallback) IsDir(ctx context.Context, key ast.Key) (bool, error) {
	return f.First.IsDir(ctx, key)
}
func (f *fallback) Keys(ctx context.Context) ([]ast.Key, error) { return f.First.Keys(ctx) }
func (f *fallback) ListDir(ctx context.Context, key ast.Key) ([]string, error) {
	return f.First.ListDir(ctx, key)
}
func (f *fallback) ListDirKeys(ctx context.Context, key ast.Key) ([]ast.Key, error) {
	return ListDirKeysDefault(ctx, f, key)
}
func (f *fallback) ListDirKeysDeep(ctx context.Context, key ast.Key) ([]ast.Key, error) {
	return ListDirKeysDeepDefault(ctx, f, key)
}
func (f *fallback) MakeDir(ctx context.Context, key ast.Key) error { return f.First.MakeDir(ctx, key) }
func (f *fallback) IsSupported(key ast.Key) bool {
	return f.First.IsSupported(key) || f.Second.IsSupported(key)
}
func (f *fallback) KeyPrefix() ast.Key { return ast.Key{} }
