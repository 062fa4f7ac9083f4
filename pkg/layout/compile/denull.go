package compile

import (
	"github.com/typeset-go/typeset/pkg/errors"
	"github.com/typeset-go/typeset/pkg/layout"
)

// denull ingests the user-built layout into the first arena while
// eliminating Null nodes:
//
//	comp(null, x) = comp(x, null) = x
//	fix(null) = grp(null) = seq(null) = nest(null) = pack(null) = null
//
// Line nodes keep absent operands: line(null, x) is a hard break with
// an empty leading line, and symmetrically on the right. A whole tree
// reducing to Null comes back as nil, which renders to the empty
// string.
//
// Empty text literals are rejected here; constructed trees cannot
// contain them, but hand-built ones can.
func denull(dst *arena, l *layout.Layout, g *depthGuard) (*node, error) {
	if l == nil {
		return nil, nil
	}
	if err := g.enter(); err != nil {
		return nil, err
	}
	defer g.exit()

	switch l.Kind {
	case layout.KindNull:
		return nil, nil

	case layout.KindText:
		if l.Text == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "empty text literal")
		}
		return dst.text(l.Text), nil

	case layout.KindFix, layout.KindGrp, layout.KindSeq, layout.KindNest, layout.KindPack:
		child, err := denull(dst, l.Left, g)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, nil
		}
		return dst.unary(kindOf(l.Kind), child), nil

	case layout.KindLine:
		left, err := denull(dst, l.Left, g)
		if err != nil {
			return nil, err
		}
		right, err := denull(dst, l.Right, g)
		if err != nil {
			return nil, err
		}
		return dst.line(left, right), nil

	case layout.KindComp:
		left, err := denull(dst, l.Left, g)
		if err != nil {
			return nil, err
		}
		right, err := denull(dst, l.Right, g)
		if err != nil {
			return nil, err
		}
		if left == nil {
			return right, nil
		}
		if right == nil {
			return left, nil
		}
		return dst.comp(left, right, l.Attr.Pad, l.Attr.Fix), nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown layout kind %d", l.Kind)
	}
}

func kindOf(k layout.Kind) nodeKind {
	switch k {
	case layout.KindFix:
		return kindFix
	case layout.KindGrp:
		return kindGrp
	case layout.KindSeq:
		return kindSeq
	case layout.KindNest:
		return kindNest
	default:
		return kindPack
	}
}
