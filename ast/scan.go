package ast

import "fmt"

// splitUnescaped splits s on unescaped occurrences of sep, treating every
// "~<code>" escape unit as an opaque, uninterruptible span and treating a
// "~X~...~E" link expression as a single opaque span regardless of depth.
// It never decodes escapes; callers decode each resulting piece
// separately once its role (action name, parameter, header parameter) is
// known.
func splitUnescaped(s string, sep byte) ([]string, error) {
	var pieces []string
	start := 0
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '~':
			next, linkStart, err := skipEscapeUnit(s, i)
			if err != nil {
				return nil, err
			}
			if linkStart {
				end, err := skipLinkBody(s, next)
				if err != nil {
					return nil, err
				}
				i = end
				continue
			}
			i = next
		case c == sep:
			pieces = append(pieces, s[start:i])
			i++
			start = i
		default:
			i++
		}
	}
	pieces = append(pieces, s[start:])
	return pieces, nil
}

// skipEscapeUnit consumes a single escape unit starting at s[i] (s[i] must
// be '~') and returns the index right after it. linkStart reports whether
// the unit consumed was the three-character "~X~" link-open marker, in
// which case the caller still needs to consume the link body up to its
// matching "~E".
func skipEscapeUnit(s string, i int) (next int, linkStart bool, err error) {
	if i+1 >= len(s) {
		return 0, false, fmt.Errorf("dangling '~' at end of input")
	}
	c := s[i+1]
	if c == 'X' && i+2 < len(s) && s[i+2] == '~' {
		return i + 3, true, nil
	}
	switch c {
	case '~', '_', '/', 'I', '.', 'h', 'H', 'f', 'P':
		return i + 2, false, nil
	}
	if isDigit(c) {
		j := i + 2
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		return j, false, nil
	}
	return 0, false, fmt.Errorf("unrecognized escape '~%c'", c)
}

// skipLinkBody consumes the body of a link expression starting right
// after its opening "~X~" marker (at index i) up to and including its
// matching "~E", honoring nested links. It returns the index right after
// the matching "~E".
func skipLinkBody(s string, i int) (int, error) {
	depth := 1
	for i < len(s) {
		if s[i] == '~' {
			if i+2 < len(s) && s[i+1] == 'X' && s[i+2] == '~' {
				depth++
				i += 3
				continue
			}
			if i+1 < len(s) && s[i+1] == 'E' {
				depth--
				i += 2
				if depth == 0 {
					return i, nil
				}
				continue
			}
			next, _, err := skipEscapeUnit(s, i)
			if err != nil {
				return 0, err
			}
			i = next
			continue
		}
		i++
	}
	return 0, fmt.Errorf("unterminated link expression (missing '~E')")
}

// isLinkSpan reports whether s is exactly one "~X~...~E" link expression,
// and if so returns its inner query text.
func isLinkSpan(s string) (inner string, ok bool) {
	if len(s) < 5 || s[:3] != "~X~" || s[len(s)-2:] != "~E" {
		return "", false
	}
	return s[3 : len(s)-2], true
}
