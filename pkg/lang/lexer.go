package lang

import (
	"strings"
	"unicode"

	"github.com/typeset-go/typeset/pkg/errors"
)

// tokenKind discriminates the tokens of the layout mini-language.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokIdent // fix, grp, seq, nest, pack, null
	tokLParen
	tokRParen
	tokUnpadded      // &
	tokPadded        // +
	tokFixedUnpadded // !&
	tokFixedPadded   // !+
	tokLine          // @
	tokDoubleLine    // @@
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokString:
		return "string"
	case tokIdent:
		return "identifier"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokUnpadded:
		return "'&'"
	case tokPadded:
		return "'+'"
	case tokFixedUnpadded:
		return "'!&'"
	case tokFixedPadded:
		return "'!+'"
	case tokLine:
		return "'@'"
	case tokDoubleLine:
		return "'@@'"
	default:
		return "unknown token"
	}
}

// token is one lexeme with its position for error reporting.
type token struct {
	kind tokenKind
	text string // identifier name or decoded string contents
	line int    // 1-based
	col  int    // 1-based, in bytes
}

// lexer scans the source into tokens on demand.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (lx *lexer) errorf(line, col int, format string, args ...any) error {
	return errors.New(errors.ErrCodeSyntax, "%d:%d: "+format,
		append([]any{line, col}, args...)...)
}

func (lx *lexer) advance() byte {
	c := lx.src[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return c
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ', '\t', '\r', '\n':
			lx.advance()
		case '#':
			// Comment to end of line.
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.advance()
			}
		default:
			return
		}
	}
}

// next scans and returns the next token.
func (lx *lexer) next() (token, error) {
	lx.skipSpace()
	line, col := lx.line, lx.col
	if lx.pos >= len(lx.src) {
		return token{kind: tokEOF, line: line, col: col}, nil
	}

	switch c := lx.advance(); c {
	case '(':
		return token{kind: tokLParen, line: line, col: col}, nil
	case ')':
		return token{kind: tokRParen, line: line, col: col}, nil
	case '&':
		return token{kind: tokUnpadded, line: line, col: col}, nil
	case '+':
		return token{kind: tokPadded, line: line, col: col}, nil
	case '!':
		if lx.pos < len(lx.src) {
			switch lx.src[lx.pos] {
			case '&':
				lx.advance()
				return token{kind: tokFixedUnpadded, line: line, col: col}, nil
			case '+':
				lx.advance()
				return token{kind: tokFixedPadded, line: line, col: col}, nil
			}
		}
		return token{}, lx.errorf(line, col, "expected '&' or '+' after '!'")
	case '@':
		if lx.pos < len(lx.src) && lx.src[lx.pos] == '@' {
			lx.advance()
			return token{kind: tokDoubleLine, line: line, col: col}, nil
		}
		return token{kind: tokLine, line: line, col: col}, nil
	case '"':
		return lx.scanString(line, col)
	default:
		if isIdentStart(rune(c)) {
			return lx.scanIdent(c, line, col), nil
		}
		return token{}, lx.errorf(line, col, "unexpected character %q", c)
	}
}

func (lx *lexer) scanString(line, col int) (token, error) {
	var b strings.Builder
	for {
		if lx.pos >= len(lx.src) {
			return token{}, lx.errorf(line, col, "unterminated string")
		}
		c := lx.advance()
		switch c {
		case '"':
			return token{kind: tokString, text: b.String(), line: line, col: col}, nil
		case '\n':
			return token{}, lx.errorf(line, col, "unterminated string")
		case '\\':
			if lx.pos >= len(lx.src) {
				return token{}, lx.errorf(line, col, "unterminated string")
			}
			switch e := lx.advance(); e {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return token{}, lx.errorf(lx.line, lx.col-2, "unknown escape %q", string(e))
			}
		default:
			b.WriteByte(c)
		}
	}
}

func (lx *lexer) scanIdent(first byte, line, col int) token {
	var b strings.Builder
	b.WriteByte(first)
	for lx.pos < len(lx.src) && isIdentPart(rune(lx.src[lx.pos])) {
		b.WriteByte(lx.advance())
	}
	return token{kind: tokIdent, text: b.String(), line: line, col: col}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
