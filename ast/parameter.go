package ast

import "github.com/orest-d/liquer-go/position"

// ActionParameter is a tagged union: a literal string, or a link to a
// nested Query whose evaluated value supplies the parameter.
type ActionParameter struct {
	Text     string // valid only when Link is nil
	Link     *Query // non-nil for a link parameter
	Position position.Position
}

// NewStringParameter builds a literal-text action parameter.
func NewStringParameter(text string) ActionParameter {
	return ActionParameter{Text: text, Position: position.Unknown}
}

// NewLinkParameter builds a link action parameter.
func NewLinkParameter(q *Query) ActionParameter {
	return ActionParameter{Link: q, Position: position.Unknown}
}

// IsLink reports whether this parameter is a link rather than literal text.
func (p ActionParameter) IsLink() bool { return p.Link != nil }

// Equal compares two parameters structurally, ignoring position.
func (p ActionParameter) Equal(other ActionParameter) bool {
	if p.IsLink() != other.IsLink() {
		return false
	}
	if p.IsLink() {
		return p.Link.Equal(other.Link)
	}
	return p.Text == other.Text
}

// Encode renders the parameter using the token-escape table, or as a
// '~X~...~E' wrapped sub-query when it is a link.
func (p ActionParameter) Encode() string {
	if p.IsLink() {
		return "~X~" + p.Link.Encode() + "~E"
	}
	return escapeParameterText(p.Text)
}

// ActionRequest is a single named action with its ordered parameters.
// An ActionRequest named "ns" is a namespace directive rather than a
// command invocation; see Query predecessor handling in the planner.
type ActionRequest struct {
	Name       string
	Parameters []ActionParameter
	Position   position.Position
}

// NewActionRequest builds an action request with unknown position.
func NewActionRequest(name string, params ...ActionParameter) ActionRequest {
	return ActionRequest{Name: name, Parameters: params, Position: position.Unknown}
}

// IsNamespaceDirective reports whether this action is an "ns-..." directive.
func (a ActionRequest) IsNamespaceDirective() bool { return a.Name == "ns" }

// Equal compares two action requests structurally, ignoring position.
func (a ActionRequest) Equal(other ActionRequest) bool {
	if a.Name != other.Name || len(a.Parameters) != len(other.Parameters) {
		return false
	}
	for i, p := range a.Parameters {
		if !p.Equal(other.Parameters[i]) {
			return false
		}
	}
	return true
}

// Encode renders "name" when there are no parameters, else
// "name-p1-p2-...".
func (a ActionRequest) Encode() string {
	s := a.Name
	for _, p := range a.Parameters {
		s += "-" + p.Encode()
	}
	return s
}

// HeaderParameter is a single string-valued header scalar.
type HeaderParameter struct {
	Text     string
	Position position.Position
}

func NewHeaderParameter(text string) HeaderParameter {
	return HeaderParameter{Text: text, Position: position.Unknown}
}

func (h HeaderParameter) Equal(other HeaderParameter) bool { return h.Text == other.Text }

func (h HeaderParameter) Encode() string { return escapeParameterText(h.Text) }

// SegmentHeader describes the "-...-/" prefix of a resource or transform
// segment: a nesting Level, an optional Name, header Parameters, and
// whether the segment is a resource segment.
type SegmentHeader struct {
	Name       string
	Level      int
	Parameters []HeaderParameter
	Resource   bool
	Position   position.Position
}

// IsTrivial reports whether this header carries no information: empty
// name, level 0, and no parameters (the Resource flag is still
// meaningful and is not considered by triviality).
func (h SegmentHeader) IsTrivial() bool {
	return h.Name == "" && h.Level == 0 && len(h.Parameters) == 0
}

func (h SegmentHeader) Equal(other SegmentHeader) bool {
	if h.Name != other.Name || h.Level != other.Level || h.Resource != other.Resource {
		return false
	}
	if len(h.Parameters) != len(other.Parameters) {
		return false
	}
	for i, p := range h.Parameters {
		if !p.Equal(other.Parameters[i]) {
			return false
		}
	}
	return true
}

// Encode renders (level+1) hyphens, an 'R' marker when Resource, the
// Name, then '-'-joined Parameters.
func (h SegmentHeader) Encode() string {
	s := ""
	for i := 0; i <= h.Level; i++ {
		s += "-"
	}
	if h.Resource {
		s += "R"
	}
	s += h.Name
	for _, p := range h.Parameters {
		s += "-" + p.Encode()
	}
	return s
}
