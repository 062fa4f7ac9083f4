// Package doc defines the canonical document form produced by the
// layout compiler and the greedy renderer that fits it to a width.
//
// A Document is an ordered sequence of lines; a line is an ordered
// sequence of items: literal fragments, glue seams with resolved break
// attributes, and indentation scope markers. Between lines is an
// implicit hard break. The document carries no knowledge of the target
// width, so one compilation can be rendered at many widths.
//
// Render performs a single left-to-right pass. At every glue seam it
// measures the unbreakable run that follows and decides break versus
// glue against the remaining space, tracking the current column, the
// nest level, pack alignment marks, and the set of groups and
// sequences already declared broken.
package doc
