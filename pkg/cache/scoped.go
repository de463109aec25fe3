package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation,
// useful when one cache backend serves several callers (e.g. a shared
// Redis instance behind the API server) that must not collide.
//
// Example usage:
//
//	// Request-scoped keys, so two concurrent solves of the same tree
//	// under different session IDs don't share a cache entry.
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// SolveKey generates a prefixed key for solve-result caching.
func (k *ScopedKeyer) SolveKey(treeHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(treeHash, opts)
}
