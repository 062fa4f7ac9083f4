package compile

import (
	"github.com/typeset-go/typeset/pkg/errors"
)

// propagateFix rewrites fix scopes onto the seams they dominate: every
// comp under a fix gets its fix attribute set, and the fix nodes
// themselves disappear. Group and sequence annotations inside a fix
// scope are dropped too, since none of their seams can break. Nest and
// pack scopes are preserved.
//
// A hard line break inside a fix scope contradicts the scope and is
// rejected rather than silently concatenated.
func propagateFix(dst *arena, n *node, g *depthGuard) (*node, error) {
	return fixWalk(dst, n, false, g)
}

func fixWalk(dst *arena, n *node, inFix bool, g *depthGuard) (*node, error) {
	if err := g.enter(); err != nil {
		return nil, err
	}
	defer g.exit()

	switch n.kind {
	case kindText:
		return dst.text(n.text), nil

	case kindFix:
		return fixWalk(dst, n.left, true, g)

	case kindGrp, kindSeq:
		if inFix {
			return fixWalk(dst, n.left, true, g)
		}
		child, err := fixWalk(dst, n.left, false, g)
		if err != nil {
			return nil, err
		}
		return dst.unary(n.kind, child), nil

	case kindNest, kindPack:
		child, err := fixWalk(dst, n.left, inFix, g)
		if err != nil {
			return nil, err
		}
		return dst.unary(n.kind, child), nil

	case kindLine:
		if inFix {
			return nil, errors.New(errors.ErrCodeInvalidInput, "hard break inside fix scope")
		}
		var left, right *node
		var err error
		if n.left != nil {
			if left, err = fixWalk(dst, n.left, false, g); err != nil {
				return nil, err
			}
		}
		if n.right != nil {
			if right, err = fixWalk(dst, n.right, false, g); err != nil {
				return nil, err
			}
		}
		return dst.line(left, right), nil

	case kindComp:
		left, err := fixWalk(dst, n.left, inFix, g)
		if err != nil {
			return nil, err
		}
		right, err := fixWalk(dst, n.right, inFix, g)
		if err != nil {
			return nil, err
		}
		return dst.comp(left, right, n.pad, n.fix || inFix), nil

	default:
		return nil, errors.New(errors.ErrCodeInternal, "unexpected node kind %d after denull", n.kind)
	}
}
