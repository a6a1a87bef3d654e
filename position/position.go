// Package position records where in source text an AST node came from.
package position

import "fmt"

// Position is a byte offset plus 1-based line/column within a query's
// source text. The zero value is not a valid position; use Unknown for
// nodes that were not parsed from text.
type Position struct {
	Offset int
	Line   int
	Column int
	known  bool
}

// Unknown is returned by nodes constructed programmatically rather than
// parsed from source text.
var Unknown = Position{}

// New returns a known position.
func New(offset, line, column int) Position {
	return Position{Offset: offset, Line: line, Column: column, known: true}
}

// IsKnown reports whether this position was attached to real source text.
func (p Position) IsKnown() bool {
	return p.known
}

func (p Position) String() string {
	if !p.known {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Errorf formats an error message prefixed with this position.
func (p Position) Errorf(format string, a ...interface{}) error {
	return fmt.Errorf("%s: %s", p, fmt.Sprintf(format, a...))
}

// Wrapf wraps an existing error with a message prefixed by this position.
func (p Position) Wrapf(err error, format string, a ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", p, fmt.Sprintf(format, a...), err)
}
