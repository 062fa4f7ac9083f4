// Package layout defines the input tree of the typeset engine.
//
// A Layout is an immutable tree of text fragments glued by typed
// composition operators and annotated with grouping, sequencing, and
// indentation controls. Trees are built with the constructor functions
// (Null, Text, Fix, Grp, Seq, Nest, Pack, Line, Comp) and handed to
// the compiler in package layout/compile; constructors perform no
// normalisation, so equal inputs always build equal trees.
//
// Ownership is by containment: a node belongs to at most one parent,
// and separators produced for joins are freshly constructed per seam.
// The compiler never mutates its input and the compiled document holds
// no reference to it.
package layout
