package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lineagekit/lineage/pkg/cache"
	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/gen"
	"github.com/lineagekit/lineage/pkg/graph"
	"github.com/lineagekit/lineage/pkg/observability"
	"github.com/lineagekit/lineage/pkg/render/nodelink"
	"github.com/lineagekit/lineage/pkg/render/pedigree"
	"github.com/lineagekit/lineage/pkg/render/pedigree/sink"
	"github.com/lineagekit/lineage/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	people, rels, hash, err := r.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	result.People = people
	result.Relationships = rels
	result.GraphHash = hash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PersonCount = len(people)

	r.Logger.Info("loaded graph",
		"source", src.Name(),
		"people", len(people),
		"relationships", len(rels),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, err := r.ComputeLayout(ctx, people, rels, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LinkCount = len(layout.Links)

	r.Logger.Info("computed layout",
		"root", opts.Root,
		"nodes", len(layout.Nodes),
		"links", len(layout.Links),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, people, rels, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the graph from the source and converts it to engine form.
// The returned hash identifies the graph document's content for caching.
func (r *Runner) Load(ctx context.Context, src source.Source) (map[gen.PersonID]*gen.Person, []gen.Relationship, string, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.Name())
	start := time.Now()

	g, err := src.Load(ctx)
	if err != nil {
		hooks.OnLoadComplete(ctx, src.Name(), 0, time.Since(start), err)
		return nil, nil, "", err
	}

	people, rels, err := g.ToEngine()
	if err != nil {
		hooks.OnLoadComplete(ctx, src.Name(), 0, time.Since(start), err)
		return nil, nil, "", err
	}

	var hash string
	if data, err := graph.MarshalGraph(g); err == nil {
		hash = cache.Hash(data)
	}

	hooks.OnLoadComplete(ctx, src.Name(), len(people), time.Since(start), nil)
	return people, rels, hash, nil
}

// ComputeLayout runs the pedigree layout for the configured root.
func (r *Runner) ComputeLayout(ctx context.Context, people map[gen.PersonID]*gen.Person, rels []gen.Relationship, opts Options) (*pedigree.Result, error) {
	opts.SetLayoutDefaults()

	root := gen.PersonID(opts.Root)
	if _, ok := people[root]; !ok {
		return nil, errors.New(errors.ErrCodePersonNotFound, "root person %q not found in graph", opts.Root)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Root, len(people))
	start := time.Now()

	layout := pedigree.Layout(root, people, rels, opts.Params())

	hooks.OnLayoutComplete(ctx, opts.Root, time.Since(start), nil)
	return layout, nil
}

// RenderWithCacheInfo generates artifacts with caching and reports
// whether every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout *pedigree.Result, people map[gen.PersonID]*gen.Person, rels []gen.Relationship, opts Options) (map[string][]byte, bool, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	cacheHooks := observability.Cache()

	// The layout key doubles as the artifact key base: it already covers
	// the graph content, root and dimensions.
	graphData, _ := graph.MarshalGraph(graph.FromEngine(orderedPeople(layout), rels))
	layoutKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts())

	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.RenderKey(layoutKey, opts.RenderKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, "render")
				artifacts[format] = data
			} else {
				cacheHooks.OnCacheMiss(ctx, "render")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := r.renderFormats(ctx, layout, people, rels, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.RenderKey(layoutKey, opts.RenderKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
			cacheHooks.OnCacheSet(ctx, "render", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout *pedigree.Result, people map[gen.PersonID]*gen.Person, rels []gen.Relationship, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, people, rels, opts)
	return artifacts, err
}

func (r *Runner) renderFormats(ctx context.Context, layout *pedigree.Result, people map[gen.PersonID]*gen.Person, rels []gen.Relationship, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		hooks.OnRenderStart(ctx, format)
		start := time.Now()

		var data []byte
		var err error
		switch format {
		case FormatSVG:
			var svgOpts []sink.SVGOption
			if opts.Labels {
				svgOpts = append(svgOpts, sink.WithLabels())
			}
			data = sink.RenderSVG(layout, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(layout, sink.WithJSONRoutes())
		case FormatDOT:
			data = []byte(nodelink.ToDOT(people, rels, nodelink.Options{
				Root:        layout.Root,
				Detailed:    true,
				Generations: generations(layout),
			}))
		case FormatNodelink:
			dot := nodelink.ToDOT(people, rels, nodelink.Options{
				Root:        layout.Root,
				Detailed:    true,
				Generations: generations(layout),
			})
			data, err = nodelink.RenderSVG(dot)
		}

		hooks.OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// generations extracts the per-person generation map from a layout.
func generations(layout *pedigree.Result) map[gen.PersonID]int {
	out := make(map[gen.PersonID]int, len(layout.Nodes))
	for _, n := range layout.Nodes {
		out[n.ID] = n.Generation
	}
	return out
}

// orderedPeople returns the layout's people in node order, which is
// already deterministic.
func orderedPeople(layout *pedigree.Result) []*gen.Person {
	out := make([]*gen.Person, 0, len(layout.Nodes))
	for _, n := range layout.Nodes {
		out = append(out, n.Person)
	}
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
