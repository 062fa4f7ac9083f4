package cache

// ScopedKeyer wraps a Keyer with a prefix, giving callers separate
// cache namespaces over one backend. The CLI scopes keys per engine
// version so a new release never reads documents compiled by an old
// one.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed key for document caching.
func (k *ScopedKeyer) DocumentKey(sourceHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(sourceHash, opts)
}

// RenderKey generates a prefixed key for render caching.
func (k *ScopedKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(docHash, opts)
}
