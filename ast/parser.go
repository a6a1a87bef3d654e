package ast

import (
	"strings"
	"unicode"

	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/position"
)

// Parser parses LiQuer query text into a Query AST. The zero value is
// ready to use; Parser holds no mutable state between calls.
type Parser struct{}

// NewParser returns a ready-to-use Parser.
func NewParser() *Parser { return &Parser{} }

// Parse parses text into a Query, or returns a *errors.Error with code
// ParseError carrying the position of the offending text.
func (p *Parser) Parse(text string) (*Query, error) {
	return parse(text)
}

// Parse is the package-level convenience entry point.
func Parse(text string) (*Query, error) { return parse(text) }

func parseErrorf(text string, offset int, format string, a ...interface{}) *lqerrors.Error {
	return lqerrors.NewParseError(posAt(text, offset), format, a...)
}

// posAt computes the 1-based line/column of offset within text.
func posAt(text string, offset int) position.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return position.New(offset, line, col)
}

func parse(text string) (*Query, error) {
	absolute := false
	body := text
	base := 0
	if strings.HasPrefix(body, "/") {
		absolute = true
		body = body[1:]
		base = 1
	}
	if body == "" {
		return &Query{Absolute: absolute}, nil
	}

	rawTokens, err := splitUnescaped(body, '/')
	if err != nil {
		return nil, parseErrorf(text, base, "%v", err)
	}

	tokens := make([]tokenSpan, len(rawTokens))
	offset := base
	for i, t := range rawTokens {
		tokens[i] = tokenSpan{text: t, offset: offset}
		offset += len(t) + 1
	}

	var segments []Segment
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.text == "" {
			// A doubled '/' with nothing in between is only valid right
			// after a header token (handled by the header branch below
			// consuming the following run); at the top of the loop it is
			// an error.
			return nil, parseErrorf(text, t.offset, "empty query segment")
		}
		if isHeaderToken(t.text) {
			header, err := parseHeaderToken(text, t.text, t.offset)
			if err != nil {
				return nil, err
			}
			i++
			// Collect the run of subsequent non-header tokens belonging
			// to this segment.
			runStart := i
			for i < len(tokens) && !isHeaderToken(tokens[i].text) {
				i++
			}
			run := tokens[runStart:i]
			if header.Resource {
				seg := &ResourceQuerySegment{Header: header, Position: posAt(text, t.offset)}
				names := make([]ResourceName, len(run))
				for j, rt := range run {
					names[j] = ResourceName{Name: rt.text, Position: posAt(text, rt.offset)}
				}
				seg.Key = Key{Names: names}
				segments = append(segments, seg)
			} else {
				seg, err := buildTransformSegment(text, header, run)
				if err != nil {
					return nil, err
				}
				segments = append(segments, seg)
			}
			continue
		}
		// Implicit transform segment with a trivial header: consume the
		// run of non-header tokens starting here.
		runStart := i
		for i < len(tokens) && !isHeaderToken(tokens[i].text) {
			i++
		}
		run := tokens[runStart:i]
		seg, err := buildTransformSegment(text, nil, run)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	return &Query{Segments: segments, Absolute: absolute}, nil
}

// isHeaderToken reports whether a top-level token is a segment header
// rather than an action/filename/resource-name token.
func isHeaderToken(s string) bool {
	return strings.HasPrefix(s, "-")
}

// parseHeaderToken parses a single header token (everything between two
// '/' that starts with '-') into a SegmentHeader.
func parseHeaderToken(text, s string, offset int) (*SegmentHeader, error) {
	level := 0
	for level < len(s) && s[level] == '-' {
		level++
	}
	rest := s[level:]
	resource := false
	if strings.HasPrefix(rest, "R") {
		resource = true
		rest = rest[1:]
	}
	pieces, err := splitUnescaped(rest, '-')
	if err != nil {
		return nil, parseErrorf(text, offset, "%v", err)
	}
	name := pieces[0]
	var params []HeaderParameter
	for _, p := range pieces[1:] {
		decoded, err := decodeParameterText(p)
		if err != nil {
			return nil, parseErrorf(text, offset, "%v", err)
		}
		params = append(params, HeaderParameter{Text: decoded, Position: posAt(text, offset)})
	}
	return &SegmentHeader{
		Name:       name,
		Level:      level - 1,
		Parameters: params,
		Resource:   resource,
		Position:   posAt(text, offset),
	}, nil
}

type tokenSpan struct {
	text   string
	offset int
}

// buildTransformSegment turns a run of non-header tokens into a
// TransformQuerySegment: zero or more actions, optionally followed by a
// filename.
func buildTransformSegment(text string, header *SegmentHeader, run []tokenSpan) (*TransformQuerySegment, error) {
	seg := &TransformQuerySegment{Header: header}
	if header != nil {
		seg.Position = header.Position
	}
	if len(run) == 0 {
		return seg, nil
	}
	actionsRun := run
	last := run[len(run)-1]
	if isFilenameToken(last.text) {
		seg.Filename = &ResourceName{Name: last.text, Position: posAt(text, last.offset)}
		actionsRun = run[:len(run)-1]
	}
	for _, t := range actionsRun {
		action, err := parseAction(text, t.text, t.offset)
		if err != nil {
			return nil, err
		}
		if !seg.Position.IsKnown() {
			seg.Position = action.Position
		}
		seg.Actions = append(seg.Actions, action)
	}
	if seg.Filename != nil && len(seg.Actions) == 0 && !seg.Position.IsKnown() {
		seg.Position = seg.Filename.Position
	}
	return seg, nil
}

// isFilenameToken reports whether s matches the filename grammar
// `ident '.' [alnum._-]+`: an identifier, a literal '.', then one or more
// filename characters.
func isFilenameToken(s string) bool {
	dot := strings.IndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return false
	}
	ident := s[:dot]
	if !isIdent(ident) {
		return false
	}
	for _, r := range s[dot+1:] {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !(unicode.IsLetter(r) || r == '_') {
			return false
		}
		if i > 0 && !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}

// parseAction parses a single "ident('-'param)*" token into an
// ActionRequest.
func parseAction(text, s string, offset int) (ActionRequest, error) {
	pieces, err := splitUnescaped(s, '-')
	if err != nil {
		return ActionRequest{}, parseErrorf(text, offset, "%v", err)
	}
	name := pieces[0]
	if !isIdent(name) {
		return ActionRequest{}, parseErrorf(text, offset, "invalid action name %q", name)
	}
	req := ActionRequest{Name: name, Position: posAt(text, offset)}
	for _, p := range pieces[1:] {
		param, err := parseActionParameter(text, p, offset)
		if err != nil {
			return ActionRequest{}, err
		}
		req.Parameters = append(req.Parameters, param)
	}
	return req, nil
}

func parseActionParameter(text, s string, offset int) (ActionParameter, error) {
	if inner, ok := isLinkSpan(s); ok {
		q, err := parse(inner)
		if err != nil {
			return ActionParameter{}, err
		}
		return ActionParameter{Link: q, Position: posAt(text, offset)}, nil
	}
	decoded, err := decodeParameterText(s)
	if err != nil {
		return ActionParameter{}, parseErrorf(text, offset, "%v", err)
	}
	return ActionParameter{Text: decoded, Position: posAt(text, offset)}, nil
}
