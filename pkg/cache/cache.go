// Package cache provides pluggable caching for rendered pedigree artifacts.
//
// Three backends are available:
//   - FileCache: entries on disk, bucketed by artifact kind, for CLI usage
//     across invocations
//   - RedisCache: shared entries, for the HTTP service
//   - NullCache: no-op, for tests and --no-cache runs
//
// Keys are derived through a Keyer so every call site hashes the same
// inputs the same way. Only rendered artifacts are stored: graph documents
// are always re-read from their source and layouts are cheap pure
// functions of the graph.
package cache

import (
	"context"
	"time"
)

// TTLRender bounds how long rendered artifacts live. Renders are pure
// functions of graph content, root and dimensions, so the TTL only guards
// against unbounded cache growth, not staleness.
const TTLRender = 7 * 24 * time.Hour

// Cache is the storage interface all backends implement.
// Get reports a miss with ok=false and a nil error; errors are reserved
// for real backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the layout parameters that participate in the cache
// key. Two requests with identical graphs but different dimensions must
// not share an entry.
type LayoutKeyOpts struct {
	Root          string
	NodeWidth     float64
	NodeHeight    float64
	HorizontalGap float64
}

// RenderKeyOpts are the render parameters that participate in the cache key.
type RenderKeyOpts struct {
	Format string
}

// Keyer derives cache keys from request inputs.
type Keyer interface {
	// LayoutKey identifies a computed layout: graph content plus the
	// parameters the placement depends on.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	// RenderKey identifies a rendered artifact derived from a layout.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(KindLayout, graphHash, opts)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey(KindRender, layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// keeping the HTTP service's entries apart from CLI runs on a shared
// backend.
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

// LayoutKey generates a prefixed key for a computed layout.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// RenderKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(layoutHash, opts)
}
