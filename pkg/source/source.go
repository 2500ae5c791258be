// Package source defines where genealogy graphs come from. Implementations
// live in subpackages: local (JSON files) and mongodb (a MongoDB
// collection pair).
package source

import (
	"context"

	"github.com/lineagekit/lineage/pkg/graph"
)

// Source loads a complete genealogy graph from a backing store.
type Source interface {
	// Load reads the full graph. Implementations report queries through
	// the observability source hooks.
	Load(ctx context.Context) (*graph.Graph, error)

	// Name identifies the backend ("local", "mongodb") for logging and
	// metrics labels.
	Name() string
}
