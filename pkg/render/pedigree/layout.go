package pedigree

import (
	"slices"

	"github.com/lineagekit/lineage/pkg/gen"
)

// Layout computes node positions and link routes for a pedigree centered
// on root. People unreachable from root are excluded. The returned
// coordinates are normalized so the drawing starts at the canvas padding
// on both axes.
func Layout(root gen.PersonID, people map[gen.PersonID]*gen.Person, rels []gen.Relationship, p Params) *Result {
	idx := gen.NewIndex(rels)
	fams := gen.GroupFamilies(idx)
	gensByID := gen.AssignGenerations(root, idx)

	nodes, byGen, gens := buildNodes(people, gensByID, p)
	if len(nodes) == 0 {
		// Explicit empty result: a min/max over zero nodes is undefined.
		return &Result{
			Nodes:         []*Node{},
			Links:         []Link{},
			Families:      fams,
			FamilyByChild: fams.ByChild,
			NodeByID:      map[gen.PersonID]*Node{},
			Root:          root,
			Params:        p,
		}
	}

	pos := positionGenerations(byGen, gens, idx, p)
	for _, n := range nodes {
		n.Y = pos[n.ID]
	}

	nodeByID := make(map[gen.PersonID]*Node, len(nodes))
	for _, n := range nodes {
		nodeByID[n.ID] = n
	}

	width, height := normalize(nodes, p)
	links := routeLinks(root, fams, rels, nodeByID)

	return &Result{
		Nodes:         nodes,
		Links:         links,
		Width:         width,
		Height:        height,
		Families:      fams,
		FamilyByChild: fams.ByChild,
		NodeByID:      nodeByID,
		Root:          root,
		Params:        p,
	}
}

// buildNodes creates a node for every reachable person with a known
// generation and assigns the horizontal column. Relationship entries
// pointing at people missing from the people map are skipped.
func buildNodes(people map[gen.PersonID]*gen.Person, gensByID map[gen.PersonID]int, p Params) ([]*Node, map[int][]*Node, []int) {
	minGen := gen.MinGeneration(gensByID)

	nodes := make([]*Node, 0, len(gensByID))
	byGen := make(map[int][]*Node)

	ids := make([]gen.PersonID, 0, len(gensByID))
	for id := range gensByID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		person, ok := people[id]
		if !ok {
			continue
		}
		g := gensByID[id]
		n := &Node{
			ID:         id,
			Person:     person,
			X:          float64(g-minGen) * p.columnStride(),
			Generation: g,
		}
		nodes = append(nodes, n)
		byGen[g] = append(byGen[g], n)
	}

	gens := make([]int, 0, len(byGen))
	for g := range byGen {
		gens = append(gens, g)
	}
	slices.Sort(gens)

	return nodes, byGen, gens
}
