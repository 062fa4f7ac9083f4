package compile

import (
	"github.com/typeset-go/typeset/pkg/doc"
)

// canonicalize flattens the resolved tree into the document form: an
// ordered sequence of lines whose items are literals, glue seams, and
// indentation markers. Glue is emitted lazily, immediately before the
// literal that follows it, so no line ever begins or ends with a seam
// and a seam left dangling at a line end (its right side reduced to an
// empty line) is dropped.
func canonicalize(n *node, g *depthGuard) (*doc.Document, error) {
	e := &emitter{}
	if err := e.visit(n, g); err != nil {
		return nil, err
	}
	e.endLine()
	return &doc.Document{Lines: e.lines}, nil
}

type emitter struct {
	lines []doc.Line
	cur   []doc.Item

	// pending is the glue awaiting its right-hand literal.
	pending *doc.Item

	// hasLit reports whether the current line holds a literal yet; a
	// pending glue with no literal to its left is discarded.
	hasLit bool
}

func (e *emitter) endLine() {
	e.lines = append(e.lines, doc.Line{Items: e.cur})
	e.cur = nil
	e.pending = nil
	e.hasLit = false
}

func (e *emitter) visit(n *node, g *depthGuard) error {
	if n == nil {
		return nil
	}
	if err := g.enter(); err != nil {
		return err
	}
	defer g.exit()

	switch n.kind {
	case kindText:
		if e.pending != nil && e.hasLit {
			e.cur = append(e.cur, *e.pending)
		}
		e.pending = nil
		e.cur = append(e.cur, doc.Lit(n.text))
		e.hasLit = true
		return nil

	case kindNest, kindPack:
		kind := doc.IndentNest
		if n.kind == kindPack {
			kind = doc.IndentPack
		}
		e.cur = append(e.cur, doc.Indent(1, kind))
		if err := e.visit(n.left, g); err != nil {
			return err
		}
		e.cur = append(e.cur, doc.Indent(-1, kind))
		return nil

	case kindLine:
		if err := e.visit(n.left, g); err != nil {
			return err
		}
		e.endLine()
		return e.visit(n.right, g)

	default: // kindComp
		if err := e.visit(n.left, g); err != nil {
			return err
		}
		glue := doc.Glue(n.pad, !n.fix, n.group, n.seq)
		e.pending = &glue
		return e.visit(n.right, g)
	}
}
