package pedigree

import "github.com/lineagekit/lineage/pkg/gen"

// Layout constants. These are engine-internal on purpose: keeping them
// fixed is what makes layouts reproducible across callers.
const (
	// rowGap is the minimum vertical space between two blocks in the
	// same generation column.
	rowGap = 18.0

	// partnerGapPad is added to the node height to space spouses within
	// a block.
	partnerGapPad = 12.0

	// canvasPadding is applied on all four sides of the final bounding box.
	canvasPadding = 100.0

	// blendFactor controls how strongly the ancestor pass pulls a block
	// toward its desired position. A hard snap (1.0) would undo the
	// sibling ordering the descendant pass established; 0 would ignore
	// ancestors entirely.
	blendFactor = 0.65
)

// Params are the caller-supplied layout dimensions. All three must be
// positive; the engine does not validate them (garbage in, garbage out,
// but never a crash).
type Params struct {
	NodeWidth     float64
	NodeHeight    float64
	HorizontalGap float64
}

// partnerGap is the vertical gap between two adjacent spouse rectangles
// in one block.
func (p Params) partnerGap() float64 { return p.NodeHeight + partnerGapPad }

// columnStride is the horizontal distance between generation columns.
func (p Params) columnStride() float64 { return p.NodeWidth + p.HorizontalGap }

// Node is the per-person layout output: the person, its top-left corner,
// and its root-relative generation (root = 0, ancestors negative).
type Node struct {
	ID         gen.PersonID
	Person     *gen.Person
	X, Y       float64
	Generation int
}

// LinkType distinguishes the two connector kinds the router emits.
type LinkType int

const (
	// LinkParent connects a parent to a child. Rendered through the
	// family's shared gutter, not as a direct diagonal.
	LinkParent LinkType = iota
	// LinkSpouse connects two spouses or partners directly.
	LinkSpouse
)

// String returns "parent" or "spouse".
func (t LinkType) String() string {
	if t == LinkSpouse {
		return "spouse"
	}
	return "parent"
}

// Link is a routed connector between two positioned nodes. Highlighted is
// set when the link belongs to the root: directly for spouse links, as a
// whole family for parent links.
type Link struct {
	From, To    *Node
	Type        LinkType
	Highlighted bool
}

// Result is the complete drawable layout. Families, FamilyByChild and
// NodeByID are exposed so renderers can group multi-child trunk lines and
// resolve link endpoints without re-deriving anything.
type Result struct {
	Nodes []*Node
	Links []Link

	Width  float64
	Height float64

	Families      *gen.Families
	FamilyByChild map[gen.PersonID]gen.FamilyID
	NodeByID      map[gen.PersonID]*Node

	// Root is the person the layout was computed from.
	Root gen.PersonID

	// Params echoes the dimensions the layout was computed with, so sinks
	// can derive gutter geometry without carrying them separately.
	Params Params
}
