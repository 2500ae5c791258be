package sink

import (
	"encoding/json"

	"github.com/lineagekit/lineage/pkg/render/pedigree"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	routes bool
}

// WithJSONRoutes includes the gutter-routed family segments so external
// renderers can draw identical trunk lines without reimplementing the
// routing.
func WithJSONRoutes() JSONOption { return func(r *jsonRenderer) { r.routes = true } }

type jsonOutput struct {
	Root     string       `json:"root"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Nodes    []jsonNode   `json:"nodes"`
	Links    []jsonLink   `json:"links"`
	Families []jsonFamily `json:"families"`
}

type jsonNode struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	GivenName  string  `json:"givenName,omitempty"`
	Surname    string  `json:"surname,omitempty"`
	Living     bool    `json:"living,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Generation int     `json:"generation"`
}

type jsonLink struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Type        string `json:"type"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

type jsonFamily struct {
	ID          string        `json:"id"`
	Parents     []string      `json:"parents"`
	Children    []string      `json:"children"`
	Highlighted bool          `json:"highlighted,omitempty"`
	Segments    []jsonSegment `json:"segments,omitempty"`
}

type jsonSegment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// RenderJSON exports the layout as a pretty-printed JSON document: node
// positions, routed links and the family groupings. Families keep their
// creation order, so re-rendering the same input produces byte-identical
// output.
func RenderJSON(res *pedigree.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Root:     string(res.Root),
		Width:    res.Width,
		Height:   res.Height,
		Nodes:    buildJSONNodes(res),
		Links:    buildJSONLinks(res),
		Families: buildJSONFamilies(res, r.routes),
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONNodes(res *pedigree.Result) []jsonNode {
	nodes := make([]jsonNode, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		nodes = append(nodes, jsonNode{
			ID:         string(n.ID),
			Name:       n.Person.DisplayName(),
			GivenName:  n.Person.GivenName,
			Surname:    n.Person.Surname,
			Living:     n.Person.Living,
			X:          n.X,
			Y:          n.Y,
			Generation: n.Generation,
		})
	}
	return nodes
}

func buildJSONLinks(res *pedigree.Result) []jsonLink {
	links := make([]jsonLink, 0, len(res.Links))
	for _, l := range res.Links {
		links = append(links, jsonLink{
			From:        string(l.From.ID),
			To:          string(l.To.ID),
			Type:        l.Type.String(),
			Highlighted: l.Highlighted,
		})
	}
	return links
}

func buildJSONFamilies(res *pedigree.Result, routes bool) []jsonFamily {
	fams := make([]jsonFamily, 0)
	for _, f := range res.Families.All() {
		jf := jsonFamily{
			ID:       string(f.ID),
			Parents:  make([]string, 0, len(f.Parents)),
			Children: make([]string, 0, len(f.Children)),
		}
		for _, p := range f.Parents {
			jf.Parents = append(jf.Parents, string(p))
		}
		for _, c := range f.Children {
			jf.Children = append(jf.Children, string(c))
		}

		if route := pedigree.RouteFamily(f, res); route != nil {
			jf.Highlighted = route.Highlighted
			if routes {
				for _, s := range route.Segments {
					jf.Segments = append(jf.Segments, jsonSegment{
						X1: s.From.X, Y1: s.From.Y,
						X2: s.To.X, Y2: s.To.Y,
					})
				}
			}
		}

		fams = append(fams, jf)
	}
	return fams
}
