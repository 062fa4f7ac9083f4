// Package lang parses the textual layout mini-language into layout
// trees.
//
// The language mirrors the constructor set one-to-one. String
// literals are fragments; the unary keywords fix, grp, seq, nest, and
// pack open scopes; the binary operators compose:
//
//	"foo" & "bar"     unpadded composition
//	"foo" + "bar"     padded composition
//	"foo" !& "bar"    fixed unpadded composition
//	"foo" !+ "bar"    fixed padded composition
//	"foo" @ "bar"     hard line break
//	"foo" @@ "bar"    hard break with a blank line between
//
// Line operators bind loosest; composition operators bind tighter and
// associate to the right (composition is associative, so the lean is
// cosmetic). Parentheses group, null is the neutral element, and '#'
// starts a comment running to the end of the line.
//
//	grp (nest ("let" + "x" + "=" + "1")) @ "in" + "x"
package lang
