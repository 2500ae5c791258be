// Package pipeline provides the core layout pipeline for Lineage.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the genealogy graph from a source (file, MongoDB)
//  2. Layout: Compute pedigree positions centered on the root person
//  3. Render: Generate output in various formats (SVG, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Root:    "person-42",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, src, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lineagekit/lineage/pkg/cache"
	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/gen"
	"github.com/lineagekit/lineage/pkg/render/pedigree"
)

// Default layout dimensions. These match the card size the SVG sink is
// tuned for; API and CLI users can override all three.
const (
	DefaultNodeWidth     = 180.0
	DefaultNodeHeight    = 54.0
	DefaultHorizontalGap = 60.0
)

// Format constants for output formats. FormatNodelink renders the
// node-link graph view through Graphviz instead of the pedigree chart.
const (
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatNodelink: true,
}

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Root is the person the pedigree is centered on. Required.
	Root string `json:"root"`

	// Layout options
	NodeWidth     float64 `json:"node_width,omitempty"`
	NodeHeight    float64 `json:"node_height,omitempty"`
	HorizontalGap float64 `json:"horizontal_gap,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Refresh bypasses cached render artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// People and Relationships are the engine-form graph the layout ran on.
	People        map[gen.PersonID]*gen.Person
	Relationships []gen.Relationship

	// GraphHash is the content hash of the graph document.
	GraphHash string

	// Layout is the computed pedigree layout.
	Layout *pedigree.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PersonCount int
	LinkCount   int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits. Loading always reads the source (the
// record-keeper owns the data) and layout is a cheap pure function, so
// only rendered artifacts are cached.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, dot, nodelink)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Root == "" {
		return errors.New(errors.ErrCodeInvalidInput, "root person is required")
	}
	if o.NodeWidth < 0 || o.NodeHeight < 0 || o.HorizontalGap < 0 {
		return errors.New(errors.ErrCodeInvalidParams, "layout dimensions cannot be negative")
	}

	o.SetLayoutDefaults()
	o.SetRenderDefaults()

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.HorizontalGap == 0 {
		o.HorizontalGap = DefaultHorizontalGap
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Params returns the layout parameters.
func (o *Options) Params() pedigree.Params {
	return pedigree.Params{
		NodeWidth:     o.NodeWidth,
		NodeHeight:    o.NodeHeight,
		HorizontalGap: o.HorizontalGap,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Root:          o.Root,
		NodeWidth:     o.NodeWidth,
		NodeHeight:    o.NodeHeight,
		HorizontalGap: o.HorizontalGap,
	}
}

// RenderKeyOpts returns cache key options for artifact rendering.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Format: format}
}
