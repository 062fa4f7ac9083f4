package layout

import (
	"fmt"
	"strings"

	"github.com/typeset-go/typeset/pkg/errors"
)

// Kind discriminates the node variants of the Layout tree.
type Kind int

// Layout node kinds. Text and Null are the leaves; the rest are
// internal nodes.
const (
	KindNull Kind = iota
	KindText
	KindFix
	KindGrp
	KindSeq
	KindNest
	KindPack
	KindLine
	KindComp
)

// String returns the constructor name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindFix:
		return "fix"
	case KindGrp:
		return "grp"
	case KindSeq:
		return "seq"
	case KindNest:
		return "nest"
	case KindPack:
		return "pack"
	case KindLine:
		return "line"
	case KindComp:
		return "comp"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Attr holds the two composition attributes of a Comp node.
type Attr struct {
	// Pad inserts a single space at the seam when the composition is
	// not broken. A break subsumes the padding entirely.
	Pad bool

	// Fix makes the seam between the left operand's last fragment and
	// the right operand's first fragment unbreakable.
	Fix bool
}

// Layout is a node of the input tree handed to the compiler. Trees are
// built with the constructor functions below; nodes are owned by their
// parent and must not be shared between trees.
type Layout struct {
	Kind Kind

	// Text holds the literal for KindText nodes.
	Text string

	// Left is the only child of unary nodes (Fix, Grp, Seq, Nest,
	// Pack) and the left operand of Line and Comp.
	Left *Layout

	// Right is the right operand of Line and Comp.
	Right *Layout

	// Attr carries the composition attributes of Comp nodes.
	Attr Attr
}

// Null returns the neutral element. It is absorbed by composition and
// eliminated before rendering.
func Null() *Layout {
	return &Layout{Kind: KindNull}
}

// Text returns a literal fragment of width len(s). The string is
// opaque to the engine; it must be non-empty (author empty content as
// Null instead).
func Text(s string) (*Layout, error) {
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty text literal")
	}
	return &Layout{Kind: KindText, Text: s}, nil
}

// MustText is like Text but panics on empty input. Intended for
// literals known at compile time.
func MustText(s string) *Layout {
	l, err := Text(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Fix marks l as inline: every composition inside behaves as if
// unbreakable. If the fixed subtree overflows the buffer it simply
// overflows.
func Fix(l *Layout) *Layout {
	return &Layout{Kind: KindFix, Left: l}
}

// Grp marks l as a group. The solver avoids breaking compositions
// inside the group as long as a breakable composition exists to its
// left on the current line.
func Grp(l *Layout) *Layout {
	return &Layout{Kind: KindGrp, Left: l}
}

// Seq marks l as a sequence: if any composition inside breaks, all
// breakable compositions inside must break.
func Seq(l *Layout) *Layout {
	return &Layout{Kind: KindSeq, Left: l}
}

// Nest increases the indentation level by one for the scope of l. The
// column offset per level is the renderer's indent width parameter.
func Nest(l *Layout) *Layout {
	return &Layout{Kind: KindNest, Left: l}
}

// Pack marks l as pack-indented: indentation inside l is the maximum
// of the current nest indent and the column at which the first literal
// of l was emitted.
func Pack(l *Layout) *Layout {
	return &Layout{Kind: KindPack, Left: l}
}

// Line composes a and b with a hard line break between them. The break
// always renders as a newline followed by the current indentation.
func Line(a, b *Layout) *Layout {
	return &Layout{Kind: KindLine, Left: a, Right: b}
}

// Comp composes a and b with a soft seam. If pad is set, an unbroken
// seam renders as a single space. If fix is set, the seam between a's
// rightmost and b's leftmost literal is unbreakable.
func Comp(a, b *Layout, pad, fix bool) *Layout {
	return &Layout{Kind: KindComp, Left: a, Right: b, Attr: Attr{Pad: pad, Fix: fix}}
}

// String renders the tree in constructor notation, e.g.
// (comp (text "foo") (text "bar") true false). Useful for debugging
// and the inspect command.
func (l *Layout) String() string {
	var b strings.Builder
	l.write(&b)
	return b.String()
}

func (l *Layout) write(b *strings.Builder) {
	if l == nil {
		b.WriteString("null")
		return
	}
	switch l.Kind {
	case KindNull:
		b.WriteString("null")
	case KindText:
		fmt.Fprintf(b, "(text %q)", l.Text)
	case KindFix, KindGrp, KindSeq, KindNest, KindPack:
		fmt.Fprintf(b, "(%s ", l.Kind)
		l.Left.write(b)
		b.WriteString(")")
	case KindLine:
		b.WriteString("(line ")
		l.Left.write(b)
		b.WriteString(" ")
		l.Right.write(b)
		b.WriteString(")")
	case KindComp:
		b.WriteString("(comp ")
		l.Left.write(b)
		b.WriteString(" ")
		l.Right.write(b)
		fmt.Fprintf(b, " %t %t)", l.Attr.Pad, l.Attr.Fix)
	}
}
