package cache

import (
	"context"
	"time"
)

// NullCache discards everything: every Get is a miss and every Set is
// dropped. It backs --no-cache runs and keeps tests deterministic
// without touching disk.
type NullCache struct{}

// NewNullCache creates a cache that never stores artifacts.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set drops the artifact.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete has nothing to remove.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }

// Ensure NullCache implements Cache.
var _ Cache = NullCache{}
