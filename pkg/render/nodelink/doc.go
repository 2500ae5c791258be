// Package nodelink renders genealogy graphs as traditional node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// people appear as boxes connected by arrows. It's an alternative to the
// pedigree visualization for cases where a raw relationship diagram is
// preferred, e.g. for debugging the input data.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(people, rels, nodelink.Options{Root: "r"})
//	svg, err := nodelink.RenderSVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses left-to-right layout (rankdir=LR) so generations
// run horizontally, matching the pedigree visualization's orientation.
// Parent/child edges are solid arrows; spouse and partner edges are
// drawn undirected and dashed; sibling edges dotted.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
