package pedigree

import (
	"math"
	"slices"

	"github.com/lineagekit/lineage/pkg/gen"
)

// positionGenerations runs the two vertical sweeps and returns the top
// coordinate of every node. byGen holds each generation's nodes in
// encounter order; gens is the sorted list of generation numbers.
func positionGenerations(byGen map[int][]*Node, gens []int, idx *gen.Index, p Params) map[gen.PersonID]float64 {
	pos := make(map[gen.PersonID]float64)

	// Pass A: highest generation first, each block pulled toward the
	// center of its already-placed descendants.
	desc := slices.Clone(gens)
	slices.Reverse(desc)
	for _, g := range desc {
		descendantSweep(byGen[g], idx, pos, p)
	}

	// Pass B: lowest generation first, each block blended toward the
	// center of its already-swept ancestors.
	for _, g := range gens {
		ancestorSweep(byGen[g], idx, pos, p)
	}

	return pos
}

// descendantSweep places one generation's blocks top to bottom. Blocks
// with a desired center (from placed children) sort before blocks
// without one; ties break on the block's name key. Each block lands at
// its desired top, clamped so it never overlaps the block above.
func descendantSweep(nodes []*Node, idx *gen.Index, pos map[gen.PersonID]float64, p Params) {
	desired := make(map[gen.PersonID]float64)
	for _, n := range nodes {
		sum, count := 0.0, 0
		for _, c := range idx.Children(n.ID) {
			if top, ok := pos[c]; ok {
				sum += top + p.NodeHeight/2
				count++
			}
		}
		if count > 0 {
			desired[n.ID] = sum / float64(count)
		}
	}

	blocks := buildBlocks(nodes, idx, desired, p)
	slices.SortStableFunc(blocks, func(a, b *block) int {
		switch {
		case a.hasDesired && !b.hasDesired:
			return -1
		case !a.hasDesired && b.hasDesired:
			return 1
		case a.hasDesired && b.hasDesired && a.desired != b.desired:
			if a.desired < b.desired {
				return -1
			}
			return 1
		default:
			if k := a.sortKey(); k != b.sortKey() {
				if k < b.sortKey() {
					return -1
				}
				return 1
			}
			return 0
		}
	})

	cursor := math.Inf(-1)
	for _, b := range blocks {
		top := 0.0
		if b.hasDesired {
			top = b.desired - b.height/2
		} else if !math.IsInf(cursor, -1) {
			top = cursor
		}
		if top < cursor {
			top = cursor
		}
		b.place(top, pos, p)
		cursor = top + b.height + rowGap
	}
}

// ancestorSweep nudges one generation's blocks toward the mean center of
// their placed parents, keeping the Pass A vertical order and never
// introducing overlap.
func ancestorSweep(nodes []*Node, idx *gen.Index, pos map[gen.PersonID]float64, p Params) {
	desired := make(map[gen.PersonID]float64)
	for _, n := range nodes {
		if c, ok := meanCenter(idx.Parents(n.ID), pos, p); ok {
			desired[n.ID] = c
		}
	}

	blocks := buildBlocks(nodes, idx, desired, p)
	slices.SortStableFunc(blocks, func(a, b *block) int {
		at, bt := a.top(pos), b.top(pos)
		switch {
		case at < bt:
			return -1
		case at > bt:
			return 1
		default:
			return 0
		}
	})

	cursor := math.Inf(-1)
	for _, b := range blocks {
		top := b.top(pos)
		if b.hasDesired {
			desiredTop := b.desired - b.height/2
			top += blendFactor * (desiredTop - top)
		}
		if top < cursor {
			top = cursor
		}
		b.place(top, pos, p)
		cursor = top + b.height + rowGap
	}
}

// meanCenter averages the vertical centers of the placed subset of ids.
func meanCenter(ids []gen.PersonID, pos map[gen.PersonID]float64, p Params) (float64, bool) {
	sum, count := 0.0, 0
	for _, id := range ids {
		if top, ok := pos[id]; ok {
			sum += top + p.NodeHeight/2
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
