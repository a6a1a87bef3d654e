package ast

import "github.com/cespare/xxhash/v2"

// hasher returns a fresh streaming hash used by Key.Hash for a fast,
// non-cryptographic digest.
func hasher() *xxhash.Digest {
	return xxhash.New()
}
