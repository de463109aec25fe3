// Package cache provides a small Cache abstraction (file-backed for the
// CLI, Redis-backed for the API server, null for tests) plus a Keyer that
// derives stable cache keys from solve inputs.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte blobs behind string keys, with optional TTL
// expiry. Implementations: [FileCache] (local, CLI), [RedisCache]
// (shared, API server), [NullCache] (disabled).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SolveKeyOpts mirrors the fields of discadelta.SolveOptions that affect
// a solve's result, so a cache key can distinguish solves of the same
// tree under different targets.
type SolveKeyOpts struct {
	TargetMain     float64
	TargetCross    float64
	HasTargetCross bool
	OriginMain     float64
	OriginCross    float64
	Round          bool
}

// Keyer derives cache keys. HTTPKey namespaces a raw key for response
// caching; SolveKey derives a key for a memoized solve result from a
// content hash of the tree plus the options it was solved under.
type Keyer interface {
	HTTPKey(namespace, key string) string
	SolveKey(treeHash string, opts SolveKeyOpts) string
}

// DefaultKeyer is the unscoped Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a Keyer with no namespace prefix.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// HTTPKey builds "http:<namespace>:<key>".
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// SolveKey builds "solve:<hash of treeHash and opts>".
func (k *DefaultKeyer) SolveKey(treeHash string, opts SolveKeyOpts) string {
	return hashKey("solve", treeHash, opts)
}
