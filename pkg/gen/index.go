package gen

import "fmt"

// Index holds the adjacency views derived from a flat relationship list:
// parent→children, child→parents, and person→spouses (spouse and partner
// relationships are merged into one view).
//
// The index is built in a single O(R) pass and is read-only afterwards.
// List values keep relationship insertion order and are not deduplicated -
// duplicate relationships simply appear twice, which downstream stages
// tolerate. Sibling relationships are intentionally indexed nowhere.
type Index struct {
	children map[PersonID][]PersonID
	parents  map[PersonID][]PersonID
	spouses  map[PersonID][]PersonID

	// childOrder records each child the first time a parent_child edge
	// names it, so family grouping can iterate deterministically without
	// touching map iteration order.
	childOrder []PersonID
}

// NewIndex builds the adjacency views for a relationship list.
//
// The switch over relationship types is deliberately exhaustive with a
// panicking default: adding a new RelType without deciding how the index
// treats it must fail loudly, not silently no-op.
func NewIndex(rels []Relationship) *Index {
	idx := &Index{
		children: make(map[PersonID][]PersonID),
		parents:  make(map[PersonID][]PersonID),
		spouses:  make(map[PersonID][]PersonID),
	}

	for _, r := range rels {
		switch r.Type {
		case RelParentChild:
			if _, seen := idx.parents[r.To]; !seen {
				idx.childOrder = append(idx.childOrder, r.To)
			}
			idx.children[r.From] = append(idx.children[r.From], r.To)
			idx.parents[r.To] = append(idx.parents[r.To], r.From)
		case RelSpouse, RelPartner:
			idx.spouses[r.From] = append(idx.spouses[r.From], r.To)
			idx.spouses[r.To] = append(idx.spouses[r.To], r.From)
		case RelSibling:
			// Siblings are inferred from shared parents, never from the
			// sibling edge itself. Not indexed.
		default:
			panic(fmt.Sprintf("gen: unhandled relationship type %v", r.Type))
		}
	}

	return idx
}

// Children returns the children of a person in relationship insertion order.
// The returned slice is a read-only view; do not modify it.
func (ix *Index) Children(id PersonID) []PersonID { return ix.children[id] }

// Parents returns the recorded parents of a person in relationship
// insertion order. The returned slice is a read-only view.
func (ix *Index) Parents(id PersonID) []PersonID { return ix.parents[id] }

// Spouses returns the spouses and partners of a person, merged into one
// list in relationship insertion order. The returned slice is a read-only
// view.
func (ix *Index) Spouses(id PersonID) []PersonID { return ix.spouses[id] }

// ChildIDs returns every person with at least one recorded parent, in the
// order their first parent_child edge appeared.
func (ix *Index) ChildIDs() []PersonID { return ix.childOrder }
