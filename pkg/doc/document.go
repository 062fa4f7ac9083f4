package doc

import (
	"fmt"
	"strings"

	"github.com/typeset-go/typeset/pkg/errors"
)

// ItemKind discriminates the item variants of a document line.
type ItemKind int

// Item kinds.
const (
	// ItemLit is a literal fragment emitted verbatim.
	ItemLit ItemKind = iota

	// ItemGlue is a composition seam between two adjacent literals
	// with fully resolved break attributes.
	ItemGlue

	// ItemIndent is an open or close marker for an indentation scope.
	ItemIndent
)

// IndentKind distinguishes the two indentation scopes.
type IndentKind int

const (
	// IndentNest adds one fixed-width indentation level.
	IndentNest IndentKind = iota

	// IndentPack aligns to the column of the scope's first literal.
	// Pack markers carry no column at compile time; the renderer
	// records the column when the first literal is emitted.
	IndentPack
)

// Item is one element of a document line.
type Item struct {
	Kind ItemKind

	// Text is the fragment of an ItemLit.
	Text string

	// Glue attributes. Pad emits one space when the seam is not
	// broken. BreakAllowed is false iff the seam is inside a fix
	// scope or marked infix-fixed. Group and Seq name the innermost
	// enclosing scopes of each kind; 0 means none.
	Pad          bool
	BreakAllowed bool
	Group        uint32
	Seq          uint32

	// Indent marker attributes: Delta is +1 or -1, Indent the scope
	// kind.
	Delta  int
	Indent IndentKind
}

// Lit returns a literal item.
func Lit(s string) Item {
	return Item{Kind: ItemLit, Text: s}
}

// Glue returns a seam item with resolved attributes.
func Glue(pad, breakAllowed bool, group, seq uint32) Item {
	return Item{Kind: ItemGlue, Pad: pad, BreakAllowed: breakAllowed, Group: group, Seq: seq}
}

// Indent returns an open (+1) or close (-1) indentation marker.
func Indent(delta int, kind IndentKind) Item {
	return Item{Kind: ItemIndent, Delta: delta, Indent: kind}
}

// Line is an ordered sequence of items. Between lines of a document
// is an implicit hard break.
type Line struct {
	Items []Item
}

// Document is the width-independent canonical form produced by the
// compiler. It is immutable once built and can be rendered many times
// at different widths without recompiling.
type Document struct {
	Lines []Line
}

// Empty reports whether the document renders to the empty string at
// every width.
func (d *Document) Empty() bool {
	if len(d.Lines) == 0 {
		return true
	}
	if len(d.Lines) > 1 {
		return false
	}
	for _, it := range d.Lines[0].Items {
		if it.Kind == ItemLit {
			return false
		}
	}
	return true
}

// String renders the document structure in a compact debug notation,
// one document line per output line.
func (d *Document) String() string {
	var b strings.Builder
	for i, line := range d.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, it := range line.Items {
			if j > 0 {
				b.WriteByte(' ')
			}
			switch it.Kind {
			case ItemLit:
				fmt.Fprintf(&b, "%q", it.Text)
			case ItemGlue:
				fmt.Fprintf(&b, "glue(pad=%t brk=%t grp=%d seq=%d)",
					it.Pad, it.BreakAllowed, it.Group, it.Seq)
			case ItemIndent:
				kind := "nest"
				if it.Indent == IndentPack {
					kind = "pack"
				}
				sign := "+"
				if it.Delta < 0 {
					sign = "-"
				}
				b.WriteString(kind + sign)
			}
		}
	}
	return b.String()
}

// Validate checks the canonical-form invariants: indentation markers
// balance, adjacent literals are separated by exactly one glue, and no
// line begins or ends with a glue. It is used when documents cross a
// serialisation boundary; documents produced by the compiler satisfy
// it by construction.
func (d *Document) Validate() error {
	nestDepth, packDepth := 0, 0

	for li, line := range d.Lines {
		// last significant item seen on this line: 0 none, 1 lit, 2 glue
		last := 0
		for _, it := range line.Items {
			switch it.Kind {
			case ItemLit:
				if it.Text == "" {
					return errors.New(errors.ErrCodeMalformedDocument,
						"line %d: empty literal", li)
				}
				if last == 1 {
					return errors.New(errors.ErrCodeMalformedDocument,
						"line %d: adjacent literals without glue", li)
				}
				last = 1
			case ItemGlue:
				if last != 1 {
					return errors.New(errors.ErrCodeMalformedDocument,
						"line %d: glue not preceded by a literal", li)
				}
				last = 2
			case ItemIndent:
				if it.Delta != 1 && it.Delta != -1 {
					return errors.New(errors.ErrCodeMalformedDocument,
						"line %d: indent delta %d", li, it.Delta)
				}
				switch it.Indent {
				case IndentNest:
					nestDepth += it.Delta
					if nestDepth < 0 {
						return errors.New(errors.ErrCodeMalformedDocument,
							"line %d: unmatched nest close", li)
					}
				case IndentPack:
					packDepth += it.Delta
					if packDepth < 0 {
						return errors.New(errors.ErrCodeMalformedDocument,
							"line %d: unmatched pack close", li)
					}
				default:
					return errors.New(errors.ErrCodeMalformedDocument,
						"line %d: unknown indent kind %d", li, it.Indent)
				}
			default:
				return errors.New(errors.ErrCodeMalformedDocument,
					"line %d: unknown item kind %d", li, it.Kind)
			}
		}
		if last == 2 {
			return errors.New(errors.ErrCodeMalformedDocument,
				"line %d: trailing glue", li)
		}
	}

	if nestDepth != 0 {
		return errors.New(errors.ErrCodeMalformedDocument,
			"unbalanced nest markers: %d left open", nestDepth)
	}
	if packDepth != 0 {
		return errors.New(errors.ErrCodeMalformedDocument,
			"unbalanced pack markers: %d left open", packDepth)
	}
	return nil
}
