package layout

// JoinWith joins layouts with a separator between each pair of
// elements. The separator is attached to the preceding element with an
// unpadded seam and to the following element with a padded seam.
// An empty slice yields Null; a single element is returned unchanged.
func JoinWith(layouts []*Layout, sep func() *Layout) *Layout {
	switch len(layouts) {
	case 0:
		return Null()
	case 1:
		return layouts[0]
	}
	out := layouts[len(layouts)-1]
	for i := len(layouts) - 2; i >= 0; i-- {
		out = Comp(Comp(layouts[i], sep(), false, true), out, true, false)
	}
	return out
}

// Join composes layouts left to right with unpadded seams.
func Join(layouts []*Layout) *Layout {
	return fold(layouts, func(a, b *Layout) *Layout { return Comp(a, b, false, false) })
}

// JoinPadded composes layouts left to right with padded seams.
func JoinPadded(layouts []*Layout) *Layout {
	return fold(layouts, func(a, b *Layout) *Layout { return Comp(a, b, true, false) })
}

// JoinLines places each layout on its own line.
func JoinLines(layouts []*Layout) *Layout {
	return fold(layouts, Line)
}

// fold right-folds layouts with op, so the result leans to the right
// the way the linearisation pass produces it anyway.
func fold(layouts []*Layout, op func(a, b *Layout) *Layout) *Layout {
	switch len(layouts) {
	case 0:
		return Null()
	case 1:
		return layouts[0]
	}
	out := layouts[len(layouts)-1]
	for i := len(layouts) - 2; i >= 0; i-- {
		out = op(layouts[i], out)
	}
	return out
}
