package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// escapeParameterText renders text using the token-escape table so that
// it round-trips through the parser. Characters with no escape
// requirement pass through verbatim.
func escapeParameterText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '~':
			b.WriteString("~~")
		case '-':
			b.WriteString("~_")
		case '/':
			b.WriteString("~/")
		case ' ':
			b.WriteString("~.")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// scheme escapes recognized by the decoder, each selected by its single
// code letter.
var schemeEscapes = []struct {
	code   byte
	expand string
}{
	{'h', "http://"},
	{'H', "https://"},
	{'f', "file://"},
	{'P', "://"},
}

func expandScheme(code byte) (string, bool) {
	for _, s := range schemeEscapes {
		if s.code == code {
			return s.expand, true
		}
	}
	return "", false
}

// decodeParameterText reverses escapeParameterText over a span of text
// known to contain no un-escaped link markers ("~X~...~E"); those are
// peeled off by the scanner before this function runs.
func decodeParameterText(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c != '~' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(raw) {
			return "", errParseF(raw, i, "dangling '~' escape at end of parameter")
		}
		next := raw[i+1]
		switch {
		case next == '~':
			b.WriteByte('~')
			i += 2
		case next == '_':
			b.WriteByte('-')
			i += 2
		case next == '/':
			b.WriteByte('/')
			i += 2
		case next == 'I':
			b.WriteByte('/')
			i += 2
		case next == '.':
			b.WriteByte(' ')
			i += 2
		case isDigit(next):
			j := i + 1
			for j < len(raw) && isDigit(raw[j]) {
				j++
			}
			b.WriteByte('-')
			b.WriteString(raw[i+1 : j])
			i = j
		default:
			if expanded, ok := expandScheme(next); ok {
				b.WriteString(expanded)
				i += 2
				continue
			}
			return "", errParseF(raw, i, "unrecognized escape '~%c'", next)
		}
	}
	return b.String(), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// errParseF is a tiny helper kept local to this file to avoid importing
// the position-aware errors package for a message-only decode failure;
// callers wrap it with real position information once the offending span
// is located within the original query text.
func errParseF(raw string, offset int, format string, a ...interface{}) error {
	return &strconvLikeError{raw: raw, offset: offset, msg: fmt.Sprintf(format, a...)}
}

type strconvLikeError struct {
	raw    string
	offset int
	msg    string
}

func (e *strconvLikeError) Error() string {
	return e.msg + " at offset " + strconv.Itoa(e.offset) + " in " + strconv.Quote(e.raw)
}
