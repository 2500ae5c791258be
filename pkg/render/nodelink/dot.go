package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/lineagekit/lineage/pkg/gen"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Root highlights one person's box. Empty means no highlight.
	Root gen.PersonID

	// Detailed includes generation numbers in node labels when set
	// alongside Generations.
	Detailed bool

	// Generations optionally labels each person with their assigned
	// generation (usually from [gen.AssignGenerations]).
	Generations map[gen.PersonID]int
}

// ToDOT converts a genealogy graph to Graphviz DOT format for node-link
// visualization. People are emitted in sorted id order and relationships
// in input order, so identical inputs produce identical DOT source.
func ToDOT(people map[gen.PersonID]*gen.Person, rels []gen.Relationship, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.7;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make([]gen.PersonID, 0, len(people))
	for id := range people {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		label := fmtLabel(people[id], opts)
		attrs := fmtAttrs(id, label, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", string(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range rels {
		if _, ok := people[r.From]; !ok {
			continue
		}
		if _, ok := people[r.To]; !ok {
			continue
		}
		switch r.Type {
		case gen.RelParentChild:
			fmt.Fprintf(&buf, "  %q -> %q;\n", string(r.From), string(r.To))
		case gen.RelSpouse, gen.RelPartner:
			fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed];\n", string(r.From), string(r.To))
		case gen.RelSibling:
			fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dotted, constraint=false];\n", string(r.From), string(r.To))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p *gen.Person, opts Options) string {
	label := p.DisplayName()
	if opts.Detailed && opts.Generations != nil {
		if g, ok := opts.Generations[p.ID]; ok {
			label += fmt.Sprintf("\ngeneration: %d", g)
		}
	}
	return label
}

func fmtAttrs(id gen.PersonID, label string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if id == opts.Root {
		attrs = append(attrs, "fillcolor=lightyellow", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
