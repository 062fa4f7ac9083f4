package compile

import (
	"github.com/typeset-go/typeset/pkg/errors"
)

// depthGuard bounds the recursion of all passes in a single
// compilation. The counter is shared across passes: what matters is
// the deepest point of any one descent, and each pass descends the
// same tree shape.
type depthGuard struct {
	depth int
	limit int
}

// enter counts one level of descent and fails once the budget is
// exhausted.
func (g *depthGuard) enter() error {
	g.depth++
	if g.depth > g.limit {
		return &errors.StackOverflowError{Depth: g.depth, Limit: g.limit}
	}
	return nil
}

func (g *depthGuard) exit() {
	g.depth--
}
