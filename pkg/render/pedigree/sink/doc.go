// Package sink provides output format renderers for pedigree layouts.
//
// A "sink" transforms a computed [pedigree.Result] into a final output
// format. This package provides renderers for:
//
//   - SVG: person cards, family gutter trunks and spouse connectors
//   - JSON: layout data export for external tools
//
// Basic usage:
//
//	svg := sink.RenderSVG(result, sink.WithLabels())
//	data, err := sink.RenderJSON(result, sink.WithJSONRoutes())
//
// Parent connectors are drawn through the shared family gutter computed
// by [pedigree.RouteFamily], so multi-child families share one trunk
// instead of N crossing diagonals.
//
// [pedigree.Result]: github.com/lineagekit/lineage/pkg/render/pedigree.Result
// [pedigree.RouteFamily]: github.com/lineagekit/lineage/pkg/render/pedigree.RouteFamily
package sink
