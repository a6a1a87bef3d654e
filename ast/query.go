package ast

import "strings"

// Query is the full parsed query: an ordered sequence of segments plus
// whether the query text began with a leading '/'.
type Query struct {
	Segments []Segment
	Absolute bool
}

// IsEmpty reports whether the query has no segments.
func (q *Query) IsEmpty() bool { return len(q.Segments) == 0 }

// IsPureActionChain reports whether q has exactly one transform segment.
func (q *Query) IsPureActionChain() bool {
	if len(q.Segments) != 1 {
		return false
	}
	_, ok := q.Segments[0].(*TransformQuerySegment)
	return ok
}

// IsPureResourceQuery reports whether q has exactly one resource segment.
func (q *Query) IsPureResourceQuery() bool {
	if len(q.Segments) != 1 {
		return false
	}
	_, ok := q.Segments[0].(*ResourceQuerySegment)
	return ok
}

// IsNamespaceDirectiveOnly reports whether q is a pure action chain whose
// single action is an "ns-..." directive, i.e. it contributes nothing to
// planning besides scoping namespaces for its successor.
func (q *Query) IsNamespaceDirectiveOnly() bool {
	if !q.IsPureActionChain() {
		return false
	}
	t := q.Segments[0].(*TransformQuerySegment)
	return len(t.Actions) == 1 && t.Filename == nil && t.Actions[0].IsNamespaceDirective()
}

// LastTransformSegment returns the last segment if it is a transform
// segment, else nil. Used by the planner to scan for "ns-..." directives
// in the query to the left of the segment being planned.
func (q *Query) LastTransformSegment() *TransformQuerySegment {
	if len(q.Segments) == 0 {
		return nil
	}
	t, _ := q.Segments[len(q.Segments)-1].(*TransformQuerySegment)
	return t
}

// Predecessor splits off the last element of the query (an action, a
// filename, or a whole resource segment) and returns (shorter query,
// suffix query). Both results are nil when q is empty. The second result
// (suffix) is a single-segment Query representing exactly what was
// removed; it carries the last segment's header only when that segment
// held a single action and so does not survive the split, since
// otherwise the header stays on the remaining segment.
func (q *Query) Predecessor() (*Query, *Query) {
	if len(q.Segments) == 0 {
		return nil, nil
	}
	last := q.Segments[len(q.Segments)-1]
	switch seg := last.(type) {
	case *ResourceQuerySegment:
		suffix := &Query{Segments: []Segment{seg}}
		if len(q.Segments) == 1 {
			return nil, suffix
		}
		rest := &Query{Segments: q.Segments[:len(q.Segments)-1], Absolute: q.Absolute}
		return rest, suffix
	case *TransformQuerySegment:
		restSeg, suffixSeg := seg.Predecessor()
		suffix := &Query{Segments: []Segment{suffixSeg}}
		if restSeg == nil {
			if len(q.Segments) == 1 {
				return nil, suffix
			}
			rest := &Query{Segments: q.Segments[:len(q.Segments)-1], Absolute: q.Absolute}
			return rest, suffix
		}
		segs := make([]Segment, len(q.Segments))
		copy(segs, q.Segments)
		segs[len(segs)-1] = restSeg
		rest := &Query{Segments: segs, Absolute: q.Absolute}
		return rest, suffix
	default:
		return nil, nil
	}
}

// Equal compares two queries structurally, ignoring position.
func (q *Query) Equal(other *Query) bool {
	if q == nil || other == nil {
		return q == other
	}
	if q.Absolute != other.Absolute || len(q.Segments) != len(other.Segments) {
		return false
	}
	for i, s := range q.Segments {
		switch a := s.(type) {
		case *TransformQuerySegment:
			b, ok := other.Segments[i].(*TransformQuerySegment)
			if !ok || !a.Equal(b) {
				return false
			}
		case *ResourceQuerySegment:
			b, ok := other.Segments[i].(*ResourceQuerySegment)
			if !ok || !a.Equal(b) {
				return false
			}
		}
	}
	return true
}

// Encode renders the query back to its canonical textual form. This is
// also the query's fingerprint, used as a cache key.
func (q *Query) Encode() string {
	var b strings.Builder
	if q.Absolute {
		b.WriteByte('/')
	}
	for i, s := range q.Segments {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(s.Encode())
	}
	return b.String()
}

func (q *Query) String() string { return q.Encode() }

// Fingerprint is an alias for Encode, named for its use as a Cache key.
func (q *Query) Fingerprint() string { return q.Encode() }
