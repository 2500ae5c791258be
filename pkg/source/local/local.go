// Package local loads genealogy graphs from JSON files on disk.
package local

import (
	"context"
	"os"
	"time"

	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/graph"
	"github.com/lineagekit/lineage/pkg/observability"
	"github.com/lineagekit/lineage/pkg/source"
)

// Source reads a graph document from a single JSON file.
type Source struct {
	path string
}

// NewSource creates a file-backed source. The path is validated but not
// opened until Load.
func NewSource(path string) (*Source, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	return &Source{path: path}, nil
}

// Name implements [source.Source].
func (s *Source) Name() string { return "local" }

// Load reads and decodes the graph file.
func (s *Source) Load(ctx context.Context) (*graph.Graph, error) {
	hooks := observability.Source()
	hooks.OnQuery(ctx, s.Name(), "load")
	start := time.Now()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		err = errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s does not exist", s.path)
		hooks.OnError(ctx, s.Name(), "load", err)
		return nil, err
	}
	if err != nil {
		err = errors.Wrap(errors.ErrCodeStorage, err, "failed to read graph file %s", s.path)
		hooks.OnError(ctx, s.Name(), "load", err)
		return nil, err
	}

	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		hooks.OnError(ctx, s.Name(), "load", err)
		return nil, err
	}

	hooks.OnResult(ctx, s.Name(), "load", time.Since(start))
	return g, nil
}

// Ensure Source implements source.Source.
var _ source.Source = (*Source)(nil)
