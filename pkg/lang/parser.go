package lang

import (
	"github.com/typeset-go/typeset/pkg/errors"
	"github.com/typeset-go/typeset/pkg/layout"
)

// Parse reads a layout expression from src and returns the
// corresponding layout tree. Syntax errors carry line:column
// positions and the SYNTAX_ERROR code.
func Parse(src string) (*layout.Layout, error) {
	p := &parser{lx: newLexer(src)}
	if err := p.bump(); err != nil {
		return nil, err
	}
	l, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected("expression continues")
	}
	return l, nil
}

type parser struct {
	lx  *lexer
	tok token
}

// bump advances to the next token.
func (p *parser) bump() error {
	tok, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) unexpected(context string) error {
	return errors.New(errors.ErrCodeSyntax, "%d:%d: unexpected %s (%s)",
		p.tok.line, p.tok.col, p.tok.kind, context)
}

// parseExpr handles the line operators, the loosest level:
//
//	expr := comp (('@' | '@@') comp)*
//
// Folded to the right so a chain reads top to bottom.
func (p *parser) parseExpr() (*layout.Layout, error) {
	left, err := p.parseComp()
	if err != nil {
		return nil, err
	}
	switch p.tok.kind {
	case tokLine:
		if err := p.bump(); err != nil {
			return nil, err
		}
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return layout.Line(left, right), nil
	case tokDoubleLine:
		if err := p.bump(); err != nil {
			return nil, err
		}
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		// A double break leaves one blank line between the operands.
		return layout.Line(left, layout.Line(layout.Null(), right)), nil
	default:
		return left, nil
	}
}

// parseComp handles the composition operators:
//
//	comp := unary (('&' | '+' | '!&' | '!+') unary)*
//
// Right-folded; composition is associative, so the lean does not
// change the rendered output.
func (p *parser) parseComp() (*layout.Layout, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	var pad, fix bool
	switch p.tok.kind {
	case tokUnpadded:
		pad, fix = false, false
	case tokPadded:
		pad, fix = true, false
	case tokFixedUnpadded:
		pad, fix = false, true
	case tokFixedPadded:
		pad, fix = true, true
	default:
		return left, nil
	}
	if err := p.bump(); err != nil {
		return nil, err
	}
	right, err := p.parseComp()
	if err != nil {
		return nil, err
	}
	return layout.Comp(left, right, pad, fix), nil
}

// parseUnary handles the scope operators and primaries:
//
//	unary   := ('fix' | 'grp' | 'seq' | 'nest' | 'pack') unary | primary
//	primary := STRING | 'null' | '(' expr ')'
func (p *parser) parseUnary() (*layout.Layout, error) {
	switch p.tok.kind {
	case tokIdent:
		name := p.tok.text
		switch name {
		case "fix", "grp", "seq", "nest", "pack":
			if err := p.bump(); err != nil {
				return nil, err
			}
			child, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			switch name {
			case "fix":
				return layout.Fix(child), nil
			case "grp":
				return layout.Grp(child), nil
			case "seq":
				return layout.Seq(child), nil
			case "nest":
				return layout.Nest(child), nil
			default:
				return layout.Pack(child), nil
			}
		case "null":
			if err := p.bump(); err != nil {
				return nil, err
			}
			return layout.Null(), nil
		default:
			return nil, errors.New(errors.ErrCodeSyntax,
				"%d:%d: unknown operator %q", p.tok.line, p.tok.col, name)
		}

	case tokString:
		line, col, s := p.tok.line, p.tok.col, p.tok.text
		if err := p.bump(); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, errors.New(errors.ErrCodeSyntax,
				"%d:%d: empty string literal (use null)", line, col)
		}
		t, err := layout.Text(s)
		if err != nil {
			return nil, err
		}
		return t, nil

	case tokLParen:
		if err := p.bump(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.unexpected("expected ')'")
		}
		if err := p.bump(); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.unexpected("expected a layout term")
	}
}
