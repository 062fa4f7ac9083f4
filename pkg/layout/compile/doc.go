// Package compile lowers a layout tree to the canonical document form.
//
// Compilation is a sequence of tree-normalising passes, each a pure
// rewrite producing a fresh tree in a pass-local arena:
//
//  1. Denull: eliminate Null nodes via the absorption equations.
//  2. Fix propagation: push fix scopes onto every seam they dominate
//     and reject hard breaks inside them.
//  3. Linearise: re-associate compositions into a right-leaning spine,
//     each seam keeping its own attributes.
//  4. Resolve scopes: name every group and sequence scope with a
//     unique id and record the innermost ids on each seam.
//  5. Canonicalise: flatten the tree into lines of literal, glue, and
//     indentation items.
//
// Arenas are released pass by pass, so peak memory is bounded by the
// two largest neighbouring passes rather than the whole pipeline. The
// resulting Document is independent of the input tree and of any
// arena.
//
// Recursion is bounded: Compile uses a default budget that admits
// inputs nested to roughly ten thousand levels; WithDepth makes the
// budget explicit. Exceeding it fails with a stack overflow error and
// no partial document.
package compile
