package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/lineagekit/lineage/pkg/render/pedigree"
)

const cardInteractionCSS = `
    .card { transition: stroke-width 0.2s ease; }
    .card.highlight { stroke-width: 3; }
    .trunk { fill: none; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels    bool
	cardFill  string
	rootFill  string
	lineColor string
	highlight string
}

// WithLabels draws each person's display name inside the card.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithPalette overrides the default card, root and line colors.
func WithPalette(cardFill, rootFill, lineColor, highlight string) SVGOption {
	return func(r *svgRenderer) {
		r.cardFill = cardFill
		r.rootFill = rootFill
		r.lineColor = lineColor
		r.highlight = highlight
	}
}

// RenderSVG renders the layout as a standalone SVG document. Family
// parent connectors are drawn through the shared gutter; spouse links as
// direct lines. The root's card and every highlighted connector use the
// highlight color.
func RenderSVG(res *pedigree.Result, opts ...SVGOption) []byte {
	r := svgRenderer{
		cardFill:  "#ffffff",
		rootFill:  "#fff3c4",
		lineColor: "#8a8a8a",
		highlight: "#b4552d",
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		res.Width, res.Height, res.Width, res.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", cardInteractionCSS)

	renderFamilyTrunks(&buf, &r, res)
	renderSpouseLinks(&buf, &r, res)
	renderCards(&buf, &r, res)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderFamilyTrunks(buf *bytes.Buffer, r *svgRenderer, res *pedigree.Result) {
	for _, f := range res.Families.All() {
		route := pedigree.RouteFamily(f, res)
		if route == nil {
			continue
		}
		color := r.lineColor
		width := 1.5
		if route.Highlighted {
			color = r.highlight
			width = 2.5
		}
		for _, s := range route.Segments {
			fmt.Fprintf(buf, `  <line class="trunk" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
				s.From.X, s.From.Y, s.To.X, s.To.Y, color, width)
		}
	}
}

func renderSpouseLinks(buf *bytes.Buffer, r *svgRenderer, res *pedigree.Result) {
	p := res.Params
	for _, l := range res.Links {
		if l.Type != pedigree.LinkSpouse {
			continue
		}
		color := r.lineColor
		width := 1.5
		if l.Highlighted {
			color = r.highlight
			width = 2.5
		}
		// Vertical connector between the two card centers.
		x1 := l.From.X + p.NodeWidth/2
		x2 := l.To.X + p.NodeWidth/2
		y1 := l.From.Y + p.NodeHeight/2
		y2 := l.To.Y + p.NodeHeight/2
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" stroke-dasharray="4 3"/>`+"\n",
			x1, y1, x2, y2, color, width)
	}
}

func renderCards(buf *bytes.Buffer, r *svgRenderer, res *pedigree.Result) {
	p := res.Params
	for _, n := range res.Nodes {
		fill := r.cardFill
		stroke := r.lineColor
		if n.ID == res.Root {
			fill = r.rootFill
			stroke = r.highlight
		}
		fmt.Fprintf(buf, `  <rect class="card" id="card-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			html.EscapeString(string(n.ID)), n.X, n.Y, p.NodeWidth, p.NodeHeight, fill, stroke)

		if r.labels {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.0f">%s</text>`+"\n",
				n.X+p.NodeWidth/2, n.Y+p.NodeHeight/2, p.NodeHeight/3, html.EscapeString(n.Person.DisplayName()))
		}
	}
}
