// Package ast defines the LiQuer query grammar: the typed tree produced by
// parsing a query string, and the lossless encoder that turns it back into
// text. Every node remembers the position in the source text it was parsed
// from, via the position package; equality between nodes always ignores
// position.
package ast
