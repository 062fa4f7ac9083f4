// Package cache provides content-addressed caching for compiled
// documents and rendered output.
//
// Compilation and rendering are deterministic, so their results are
// cached by content hash: a document key is derived from the source
// and the recursion budget, a render key from the document hash and
// the width parameters. Backends share one interface; the CLI uses the
// file cache by default, a shared redis cache when configured, and the
// null cache when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A non-positive ttl
	// stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// DocumentKey names a compiled document by source hash and
	// recursion budget.
	DocumentKey(sourceHash string, opts DocumentKeyOpts) string

	// RenderKey names rendered output by document hash and width
	// parameters.
	RenderKey(docHash string, opts RenderKeyOpts) string
}

// DocumentKeyOpts are the compilation inputs that affect the result.
type DocumentKeyOpts struct {
	MaxDepth int
}

// RenderKeyOpts are the render parameters that affect the result.
type RenderKeyOpts struct {
	IndentWidth int
	BufferWidth int
}

// Time-to-live defaults per stage. Both stages are pure functions of
// their key inputs, so the TTLs only bound disk usage, not staleness.
const (
	TTLDocument = 7 * 24 * time.Hour
	TTLRender   = 24 * time.Hour
)

// DefaultKeyer derives keys by hashing the stage inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for document caching.
func (k *DefaultKeyer) DocumentKey(sourceHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", sourceHash, opts.MaxDepth)
}

// RenderKey generates a key for render caching.
func (k *DefaultKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return hashKey("render", docHash, opts.IndentWidth, opts.BufferWidth)
}
