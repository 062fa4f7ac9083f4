package doc

import (
	"strings"
)

// Render walks the document once, greedily deciding break versus glue
// per seam, and returns the resulting character stream. indentWidth is
// the column offset per nest level; bufferWidth the target line width.
//
// Render is infallible: every well-formed document renders to some
// string. Content that cannot fit overflows the buffer rather than
// failing. Repeated calls with the same arguments yield byte-identical
// output.
func Render(d *Document, indentWidth, bufferWidth int) string {
	if indentWidth < 0 {
		indentWidth = 0
	}
	if bufferWidth < 0 {
		bufferWidth = 0
	}

	r := renderer{
		indentWidth:  indentWidth,
		bufferWidth:  bufferWidth,
		brokenGroups: make(map[uint32]bool),
		brokenSeqs:   make(map[uint32]bool),
		atLineStart:  true,
	}

	for li, line := range d.Lines {
		if li > 0 {
			// Hard break: unconditional, no breakage state changes.
			r.newline()
		}
		for i, it := range line.Items {
			switch it.Kind {
			case ItemLit:
				r.lit(it.Text)
			case ItemGlue:
				r.glue(line.Items, i, it)
			case ItemIndent:
				r.indent(it)
			}
		}
	}
	return r.out.String()
}

// lineGlue records a seam emitted as glue on the current output line,
// for the group-suppression rule.
type lineGlue struct {
	group        uint32
	breakAllowed bool
}

type renderer struct {
	out strings.Builder

	indentWidth int
	bufferWidth int

	col         int
	nestLevel   int
	packMarks   []int // -1 until the scope's first literal is emitted
	atLineStart bool

	// Seams emitted as glue since the last newline.
	lineGlues []lineGlue

	// Scopes declared "must break" for the remainder of the document.
	brokenGroups map[uint32]bool
	brokenSeqs   map[uint32]bool
}

const unmarked = -1

// newline ends the current output line. Indentation is emitted lazily
// by the next literal so that empty lines carry no trailing spaces and
// scopes opened before the first literal still count.
func (r *renderer) newline() {
	r.out.WriteByte('\n')
	r.col = 0
	r.atLineStart = true
	r.lineGlues = r.lineGlues[:0]
}

// effectiveIndent is max(nest indent, innermost initialised pack mark).
func (r *renderer) effectiveIndent() int {
	ind := r.nestLevel * r.indentWidth
	for i := len(r.packMarks) - 1; i >= 0; i-- {
		if r.packMarks[i] != unmarked {
			if r.packMarks[i] > ind {
				ind = r.packMarks[i]
			}
			break
		}
	}
	return ind
}

func (r *renderer) lit(s string) {
	if r.atLineStart {
		ind := r.effectiveIndent()
		for i := 0; i < ind; i++ {
			r.out.WriteByte(' ')
		}
		r.col = ind
		r.atLineStart = false
	}
	// Pack scopes opened since the last literal take this column.
	for i := len(r.packMarks) - 1; i >= 0 && r.packMarks[i] == unmarked; i-- {
		r.packMarks[i] = r.col
	}
	r.out.WriteString(s)
	r.col += len(s)
}

func (r *renderer) indent(it Item) {
	switch it.Indent {
	case IndentNest:
		r.nestLevel += it.Delta
		if r.nestLevel < 0 {
			r.nestLevel = 0
		}
	case IndentPack:
		if it.Delta > 0 {
			r.packMarks = append(r.packMarks, unmarked)
		} else if len(r.packMarks) > 0 {
			r.packMarks = r.packMarks[:len(r.packMarks)-1]
		}
	}
}

// glue decides break versus glue for the seam at items[i].
func (r *renderer) glue(items []Item, i int, g Item) {
	brk := false
	switch {
	case !g.BreakAllowed:
		// Rule 1: fixed seams never break.
	case g.Seq != 0 && r.brokenSeqs[g.Seq]:
		// Rule 2: the sequence has broken; every later seam follows.
		brk = true
	case g.Group != 0 && r.brokenGroups[g.Group] && r.foreignSlack(g.Group):
		// Rule 3: the group is broken and earlier outside slack
		// exists on this line.
		brk = true
	default:
		// Rule 4: break when the next unbreakable run cannot fit.
		w := r.lookahead(items, i, g)
		remaining := r.bufferWidth - r.col
		if g.Pad {
			remaining--
		}
		if w > 0 && w > remaining {
			brk = true
			if g.Seq != 0 {
				r.brokenSeqs[g.Seq] = true
			}
			if g.Group != 0 {
				r.brokenGroups[g.Group] = true
			}
		}
	}

	if brk {
		r.newline()
		return
	}
	if g.Pad {
		r.out.WriteByte(' ')
		r.col++
	}
	r.lineGlues = append(r.lineGlues, lineGlue{group: g.Group, breakAllowed: g.BreakAllowed})
}

// foreignSlack reports whether a breakable seam of a different group
// was emitted as glue earlier on the current output line.
func (r *renderer) foreignSlack(group uint32) bool {
	for _, lg := range r.lineGlues {
		if lg.breakAllowed && lg.group != group {
			return true
		}
	}
	return false
}

// lookahead measures the printed width of the unbreakable run that
// follows the seam at items[i]: the literals and glues up to the next
// seam that can actually break here. Seams that defer to this one do
// not end the run: fixed seams, seams of the same unbroken sequence
// (all-or-nothing), and seams of a foreign group (which yield to the
// earlier slack this seam provides). Forced-broken seams end the run,
// as does the end of the line.
func (r *renderer) lookahead(items []Item, i int, x Item) int {
	w := 0
	for j := i + 1; j < len(items); j++ {
		it := items[j]
		switch it.Kind {
		case ItemLit:
			w += len(it.Text)
		case ItemIndent:
			// No width; a run never spans a break.
		case ItemGlue:
			switch {
			case !it.BreakAllowed:
				if it.Pad {
					w++
				}
			case it.Seq != 0 && r.brokenSeqs[it.Seq]:
				return w
			case it.Group != 0 && r.brokenGroups[it.Group]:
				return w
			case it.Seq != 0 && it.Seq == x.Seq:
				if it.Pad {
					w++
				}
			case it.Group != 0 && it.Group != x.Group:
				if it.Pad {
					w++
				}
			default:
				return w
			}
		}
	}
	return w
}
