package ast

import "github.com/orest-d/liquer-go/position"

// Segment is implemented by TransformQuerySegment and ResourceQuerySegment.
type Segment interface {
	Encode() string
	isSegment()
}

// TransformQuerySegment is a chain of actions, optionally terminated by a
// filename.
type TransformQuerySegment struct {
	Header   *SegmentHeader // nil when the segment has no header token
	Actions  []ActionRequest
	Filename *ResourceName // nil when the segment has no trailing filename
	Position position.Position
}

func (t *TransformQuerySegment) isSegment() {}

// Predecessor splits off the last element of the segment (a filename if
// present, otherwise the last action) and returns the remaining segment
// (nil if nothing remains) and the suffix segment holding only that last
// element. When part of the segment remains, the header stays on the
// remaining segment and the suffix has none; when the segment held a
// single action and no filename, the suffix keeps the header.
func (t *TransformQuerySegment) Predecessor() (*TransformQuerySegment, *TransformQuerySegment) {
	if t.Filename != nil {
		rest := &TransformQuerySegment{Header: t.Header, Actions: t.Actions, Position: t.Position}
		suffix := &TransformQuerySegment{Filename: t.Filename, Position: t.Filename.Position}
		return rest, suffix
	}
	if len(t.Actions) == 0 {
		return nil, nil
	}
	last := t.Actions[len(t.Actions)-1]
	if len(t.Actions) == 1 {
		return nil, &TransformQuerySegment{Header: t.Header, Actions: []ActionRequest{last}, Position: t.Position}
	}
	rest := &TransformQuerySegment{Header: t.Header, Actions: t.Actions[:len(t.Actions)-1], Position: t.Position}
	suffix := &TransformQuerySegment{Actions: []ActionRequest{last}, Position: last.Position}
	return rest, suffix
}

// IsSingleAction reports whether this segment is exactly one action with
// no filename; the header is not considered.
func (t *TransformQuerySegment) IsSingleAction() bool {
	return len(t.Actions) == 1 && t.Filename == nil
}

// IsSingleFilename reports whether this segment is exactly a filename
// with no actions.
func (t *TransformQuerySegment) IsSingleFilename() bool {
	return len(t.Actions) == 0 && t.Filename != nil
}

func (t *TransformQuerySegment) Equal(other *TransformQuerySegment) bool {
	if t == nil || other == nil {
		return t == other
	}
	if (t.Header == nil) != (other.Header == nil) {
		return false
	}
	if t.Header != nil && !t.Header.Equal(*other.Header) {
		return false
	}
	if (t.Filename == nil) != (other.Filename == nil) {
		return false
	}
	if t.Filename != nil && !t.Filename.Equal(*other.Filename) {
		return false
	}
	if len(t.Actions) != len(other.Actions) {
		return false
	}
	for i, a := range t.Actions {
		if !a.Equal(other.Actions[i]) {
			return false
		}
	}
	return true
}

func (t *TransformQuerySegment) Encode() string {
	s := ""
	if t.Header != nil {
		s += t.Header.Encode() + "/"
	}
	parts := make([]string, 0, len(t.Actions)+1)
	for _, a := range t.Actions {
		parts = append(parts, a.Encode())
	}
	if t.Filename != nil {
		parts = append(parts, t.Filename.Name)
	}
	for i, p := range parts {
		if i > 0 {
			s += "/"
		}
		s += p
	}
	return s
}

// ResourceQuerySegment represents "fetch a resource from the store".
type ResourceQuerySegment struct {
	Header   *SegmentHeader
	Key      Key
	Position position.Position
}

func (r *ResourceQuerySegment) isSegment() {}

func (r *ResourceQuerySegment) Equal(other *ResourceQuerySegment) bool {
	if r == nil || other == nil {
		return r == other
	}
	if (r.Header == nil) != (other.Header == nil) {
		return false
	}
	if r.Header != nil && !r.Header.Equal(*other.Header) {
		return false
	}
	return r.Key.Equal(other.Key)
}

func (r *ResourceQuerySegment) Encode() string {
	header := SegmentHeader{Resource: true}
	if r.Header != nil {
		header = *r.Header
		header.Resource = true
	}
	return header.Encode() + "/" + r.Key.Encode()
}
