// Package codec implements the shape-driven JSON-LD wire format: a strict
// RFC 8259 lexer/parser, Base64/URL-encoded/form-encoded payload sniffing,
// and a shape-driven encoder/decoder performing IRI resolution, literal
// shorthands, language-map collapsing, and null/empty pruning.
package codec

import (
	"strings"

	"github.com/meshcore/ld/internal/lex"
	"github.com/meshcore/ld/value"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokString
	tokNumber
	tokTrue
	tokFalse
	tokNull
)

type token struct {
	kind   tokenKind
	text   string // decoded string value, for tokString; raw lexical, for tokNumber
	line   int
	column int
}

// lexer tokenizes RFC 8259 JSON text, additionally rejecting leading-zero
// and trailing-dot numbers and unknown backslash escapes, per the
// embedded wire format's strict lexical rules.
type lexer struct {
	src        string
	pos        int
	line, col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) errorf(format string, args ...any) error {
	return lexErr(l.line, l.col, format, args...)
}

func lexErr(line, col int, format string, args ...any) error {
	return value.NewSyntaxError(line, col, format, args...)
}

func (l *lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) advance() (byte, bool) {
	b, ok := l.peekByte()
	if !ok {
		return 0, false
	}
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b, true
}

func (l *lexer) skipSpace() {
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	startLine, startCol := l.line, l.col
	b, ok := l.peekByte()
	if !ok {
		return token{kind: tokEOF, line: startLine, column: startCol}, nil
	}
	switch b {
	case '{':
		l.advance()
		return token{kind: tokLBrace, line: startLine, column: startCol}, nil
	case '}':
		l.advance()
		return token{kind: tokRBrace, line: startLine, column: startCol}, nil
	case '[':
		l.advance()
		return token{kind: tokLBracket, line: startLine, column: startCol}, nil
	case ']':
		l.advance()
		return token{kind: tokRBracket, line: startLine, column: startCol}, nil
	case ':':
		l.advance()
		return token{kind: tokColon, line: startLine, column: startCol}, nil
	case ',':
		l.advance()
		return token{kind: tokComma, line: startLine, column: startCol}, nil
	case '"':
		return l.lexString(startLine, startCol)
	case 't':
		return l.lexLiteral("true", tokTrue, startLine, startCol)
	case 'f':
		return l.lexLiteral("false", tokFalse, startLine, startCol)
	case 'n':
		return l.lexLiteral("null", tokNull, startLine, startCol)
	default:
		if b == '-' || (b >= '0' && b <= '9') {
			return l.lexNumber(startLine, startCol)
		}
		return token{}, l.errorf("unexpected byte %q", b)
	}
}

func (l *lexer) lexLiteral(word string, kind tokenKind, line, col int) (token, error) {
	if l.pos+len(word) > len(l.src) || l.src[l.pos:l.pos+len(word)] != word {
		return token{}, lexErr(line, col, "malformed literal near %q", peekAround(l.src, l.pos))
	}
	for range word {
		l.advance()
	}
	return token{kind: kind, line: line, column: col}, nil
}

func peekAround(s string, pos int) string {
	end := pos + 8
	if end > len(s) {
		end = len(s)
	}
	return s[pos:end]
}

func (l *lexer) lexString(line, col int) (token, error) {
	l.advance() // opening quote
	var raw strings.Builder
	for {
		b, ok := l.advance()
		if !ok {
			return token{}, lexErr(line, col, "unterminated string")
		}
		if b == '"' {
			break
		}
		if b == '\\' {
			esc, ok := l.advance()
			if !ok {
				return token{}, lexErr(line, col, "unterminated escape")
			}
			raw.WriteByte('\\')
			raw.WriteByte(esc)
			if esc == 'u' {
				for i := 0; i < 4; i++ {
					h, ok := l.advance()
					if !ok {
						return token{}, lexErr(line, col, "truncated \\u escape")
					}
					raw.WriteByte(h)
				}
			}
			continue
		}
		raw.WriteByte(b)
	}
	decoded, err := lex.UnescapeJSON(raw.String())
	if err != nil {
		return token{}, lexErr(line, col, "%v", err)
	}
	return token{kind: tokString, text: decoded, line: line, column: col}, nil
}

func (l *lexer) lexNumber(line, col int) (token, error) {
	start := l.pos
	if b, _ := l.peekByte(); b == '-' {
		l.advance()
	}
	digitsStart := l.pos
	for {
		b, ok := l.peekByte()
		if !ok || b < '0' || b > '9' {
			break
		}
		l.advance()
	}
	if l.pos == digitsStart {
		return token{}, lexErr(line, col, "malformed number: no digits")
	}
	// Reject leading zero (e.g. "01") unless the integer part is exactly "0".
	intPart := l.src[digitsStart:l.pos]
	if len(intPart) > 1 && intPart[0] == '0' {
		return token{}, lexErr(line, col, "malformed number: leading zero in %q", intPart)
	}
	if b, ok := l.peekByte(); ok && b == '.' {
		l.advance()
		fracStart := l.pos
		for {
			b, ok := l.peekByte()
			if !ok || b < '0' || b > '9' {
				break
			}
			l.advance()
		}
		if l.pos == fracStart {
			return token{}, lexErr(line, col, "malformed number: trailing dot")
		}
	}
	if b, ok := l.peekByte(); ok && (b == 'e' || b == 'E') {
		l.advance()
		if b, ok := l.peekByte(); ok && (b == '+' || b == '-') {
			l.advance()
		}
		expStart := l.pos
		for {
			b, ok := l.peekByte()
			if !ok || b < '0' || b > '9' {
				break
			}
			l.advance()
		}
		if l.pos == expStart {
			return token{}, lexErr(line, col, "malformed number: empty exponent")
		}
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], line: line, column: col}, nil
}
