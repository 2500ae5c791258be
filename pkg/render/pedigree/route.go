package pedigree

import "github.com/lineagekit/lineage/pkg/gen"

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one straight orthogonal stroke of a routed family.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// FamilyRoute is the gutter-routed geometry for one family: a short
// horizontal stub from each parent to the gutter, a vertical gutter run
// spanning all connection points, and a horizontal run from the gutter
// to each child.
type FamilyRoute struct {
	Family      gen.FamilyID
	Segments    []Segment
	Highlighted bool
}

// RouteFamily computes the orthogonal gutter route for one family
// against a finished layout. Families whose parents or children did not
// all make it into the layout degrade gracefully: only resolved members
// get segments, and a family with no resolved parents or no resolved
// children yields a nil route.
func RouteFamily(f *gen.Family, r *Result) *FamilyRoute {
	resolve := func(ids []gen.PersonID) []*Node {
		out := make([]*Node, 0, len(ids))
		for _, id := range ids {
			if n, ok := r.NodeByID[id]; ok {
				out = append(out, n)
			}
		}
		return out
	}

	parents := resolve(f.Parents)
	children := resolve(f.Children)
	if len(parents) == 0 || len(children) == 0 {
		return nil
	}

	p := r.Params

	// The gutter sits halfway into the horizontal gap after the
	// leftmost parent's column.
	leftmost := parents[0]
	for _, n := range parents[1:] {
		if n.X < leftmost.X {
			leftmost = n
		}
	}
	gutterX := leftmost.X + p.NodeWidth + p.HorizontalGap/2

	trunkY := 0.0
	for _, n := range parents {
		trunkY += n.Y + p.NodeHeight/2
	}
	trunkY /= float64(len(parents))

	route := &FamilyRoute{Family: f.ID}
	for _, n := range parents {
		route.Highlighted = route.Highlighted || n.ID == r.Root
	}
	for _, n := range children {
		route.Highlighted = route.Highlighted || n.ID == r.Root
	}

	spanMin, spanMax := trunkY, trunkY

	for _, n := range parents {
		y := n.Y + p.NodeHeight/2
		route.Segments = append(route.Segments, Segment{
			From: Point{X: n.X + p.NodeWidth, Y: y},
			To:   Point{X: gutterX, Y: y},
		})
		if y < spanMin {
			spanMin = y
		}
		if y > spanMax {
			spanMax = y
		}
	}

	for _, n := range children {
		y := n.Y + p.NodeHeight/2
		route.Segments = append(route.Segments, Segment{
			From: Point{X: gutterX, Y: y},
			To:   Point{X: n.X, Y: y},
		})
		if y < spanMin {
			spanMin = y
		}
		if y > spanMax {
			spanMax = y
		}
	}

	route.Segments = append(route.Segments, Segment{
		From: Point{X: gutterX, Y: spanMin},
		To:   Point{X: gutterX, Y: spanMax},
	})

	return route
}
