package compile

// nodeKind discriminates the variants of the compiler's working tree.
// Null does not appear: the denull pass represents it as a nil *node,
// so later passes never see it (except as an absent Line operand).
type nodeKind uint8

const (
	kindText nodeKind = iota
	kindFix
	kindGrp
	kindSeq
	kindNest
	kindPack
	kindLine
	kindComp
)

// node is the arena-allocated working representation shared by all
// passes. Which fields are meaningful depends on the kind; group and
// seq are populated by the scope-resolution pass only.
type node struct {
	kind nodeKind

	text string

	// left is the only child of unary nodes and the left operand of
	// line and comp. Line operands may be nil (an empty line side).
	left  *node
	right *node

	pad bool
	fix bool

	group uint32
	seq   uint32
}
