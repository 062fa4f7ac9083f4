package compile

import (
	"github.com/typeset-go/typeset/pkg/doc"
	"github.com/typeset-go/typeset/pkg/errors"
	"github.com/typeset-go/typeset/pkg/layout"
)

// DefaultMaxDepth is the recursion budget used by Compile. Well-formed
// inputs nested below roughly this many levels compile; deeper ones
// fail with a stack overflow error and can be retried via WithDepth.
const DefaultMaxDepth = 10000

// Compile lowers a layout tree to its canonical document form. The
// returned document references nothing from the input tree and can be
// rendered at any width.
//
// Compile fails with INVALID_INPUT for static contract violations
// (an empty text literal, a hard break inside a fix scope) and with a
// stack overflow error when the recursion budget is exhausted. No
// partial document is ever returned alongside an error.
func Compile(l *layout.Layout) (*doc.Document, error) {
	return WithDepth(l, DefaultMaxDepth)
}

// WithDepth is Compile with an explicit recursion budget.
func WithDepth(l *layout.Layout, limit int) (*doc.Document, error) {
	if limit <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"recursion limit must be positive, got %d", limit)
	}
	guard := &depthGuard{limit: limit}

	// P1: ingest and eliminate nulls.
	src := newArena()
	n, err := denull(src, l, guard)
	if err != nil {
		src.release()
		return nil, err
	}
	if n == nil {
		src.release()
		return &doc.Document{}, nil
	}

	// P2: propagate fix scopes onto seams.
	dst := newArena()
	n, err = propagateFix(dst, n, guard)
	src.release()
	src = dst
	if err != nil {
		src.release()
		return nil, err
	}

	// P3: re-associate composition chains.
	dst = newArena()
	n, err = linearize(dst, n, guard)
	src.release()
	src = dst
	if err != nil {
		src.release()
		return nil, err
	}

	// P4: resolve group and sequence scopes to seam ids.
	dst = newArena()
	n, err = resolveScopes(dst, n, guard)
	src.release()
	src = dst
	if err != nil {
		src.release()
		return nil, err
	}

	// P5: flatten to the document form. The document lives on the
	// ordinary heap; the last arena is released before returning.
	d, err := canonicalize(n, guard)
	src.release()
	if err != nil {
		return nil, err
	}
	return d, nil
}
