package ast

import (
	"strings"

	"github.com/orest-d/liquer-go/position"
)

// ResourceName is a single path segment identifying an entry in a Store.
// Equality and hashing consider only Name; Position is metadata.
type ResourceName struct {
	Name     string
	Position position.Position
}

// NewResourceName returns a ResourceName with an unknown position.
func NewResourceName(name string) ResourceName {
	return ResourceName{Name: name, Position: position.Unknown}
}

// Extension returns the substring after the last '.' in Name, or "" if
// Name has no extension.
func (r ResourceName) Extension() string {
	if i := strings.LastIndexByte(r.Name, '.'); i >= 0 {
		return r.Name[i+1:]
	}
	return ""
}

// Equal compares two resource names by Name only.
func (r ResourceName) Equal(other ResourceName) bool {
	return r.Name == other.Name
}

// Key is an ordered sequence of resource names identifying an entry in a
// Store.
type Key struct {
	Names []ResourceName
}

// NewKey builds a Key from plain strings, with unknown positions.
func NewKey(names ...string) Key {
	k := Key{Names: make([]ResourceName, len(names))}
	for i, n := range names {
		k.Names[i] = NewResourceName(n)
	}
	return k
}

// Encode renders the key as a '/'-joined path. The empty key encodes to "".
func (k Key) Encode() string {
	parts := make([]string, len(k.Names))
	for i, n := range k.Names {
		parts[i] = n.Name
	}
	return strings.Join(parts, "/")
}

func (k Key) String() string { return k.Encode() }

// IsEmpty reports whether the key has no segments.
func (k Key) IsEmpty() bool { return len(k.Names) == 0 }

// HasPrefix reports whether prefix is a leading subsequence of k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix.Names) > len(k.Names) {
		return false
	}
	for i, n := range prefix.Names {
		if !k.Names[i].Equal(n) {
			return false
		}
	}
	return true
}

// Join returns a new key with name appended.
func (k Key) Join(name ResourceName) Key {
	names := make([]ResourceName, len(k.Names)+1)
	copy(names, k.Names)
	names[len(k.Names)] = name
	return Key{Names: names}
}

// JoinName is a convenience wrapper around Join for a plain string name.
func (k Key) JoinName(name string) Key {
	return k.Join(NewResourceName(name))
}

// Parent returns the key with its last segment removed. Parent of an
// empty key is the empty key.
func (k Key) Parent() Key {
	if len(k.Names) == 0 {
		return k
	}
	names := make([]ResourceName, len(k.Names)-1)
	copy(names, k.Names[:len(k.Names)-1])
	return Key{Names: names}
}

// Filename returns the last segment's name, or "" for an empty key.
func (k Key) Filename() string {
	if len(k.Names) == 0 {
		return ""
	}
	return k.Names[len(k.Names)-1].Name
}

// Equal compares two keys element-wise.
func (k Key) Equal(other Key) bool {
	if len(k.Names) != len(other.Names) {
		return false
	}
	for i, n := range k.Names {
		if !n.Equal(other.Names[i]) {
			return false
		}
	}
	return true
}

// Hash returns a stable hash of the key, used by cache/store implementations
// that shard or index by key.
func (k Key) Hash() uint64 {
	h := hasher()
	for _, n := range k.Names {
		_, _ = h.WriteString(n.Name)
		_, _ = h.WriteString("/")
	}
	return h.Sum64()
}

// ToAbsolute resolves a relative key against a current-working key. A key
// is already absolute if it was parsed from a leading '/'; ToAbsolute is a
// name-level join used when a relative resource reference inside a query
// (e.g. a link parameter) must be resolved against the key of the
// resource performing the reference.
func (k Key) ToAbsolute(cwd Key) Key {
	names := make([]ResourceName, 0, len(cwd.Names)+len(k.Names))
	names = append(names, cwd.Names...)
	names = append(names, k.Names...)
	return Key{Names: names}
}

// ParseKey parses a '/'-joined path into a Key. Empty segments (leading,
// trailing, or doubled '/') are dropped, matching Key.Encode's canonical
// form.
func ParseKey(s string) Key {
	if s == "" {
		return Key{}
	}
	parts := strings.Split(s, "/")
	names := make([]ResourceName, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		names = append(names, NewResourceName(p))
	}
	return Key{Names: names}
}
