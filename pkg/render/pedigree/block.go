package pedigree

import (
	"slices"

	"github.com/lineagekit/lineage/pkg/gen"
)

// block is one positioning unit: one person, or a run of transitively
// spouse-linked people in the same generation laid out as a single
// vertical stack. Blocks are transient - they exist only inside the two
// positioning sweeps.
type block struct {
	members []*Node
	height  float64

	// desired is the vertical center the block is pulled toward:
	// the mean of the non-null desired centers of its members.
	// hasDesired is false when no member has a pull yet.
	desired    float64
	hasDesired bool
}

// sortKey is the deterministic tie-break key: the lexicographic
// surname+given key of the block's first member.
func (b *block) sortKey() string { return b.members[0].Person.SortKey() }

// place assigns the block's top and positions every member below it,
// spaced by the partner gap.
func (b *block) place(top float64, pos map[gen.PersonID]float64, p Params) {
	for i, m := range b.members {
		pos[m.ID] = top + float64(i)*(p.NodeHeight+p.partnerGap())
	}
}

// top returns the block's current top position.
func (b *block) top(pos map[gen.PersonID]float64) float64 {
	return pos[b.members[0].ID]
}

// buildBlocks groups one generation's nodes into blocks. Nodes connected
// through spouse/partner edges (transitively, and only within this
// generation) share a block; everyone else gets a singleton. Member order
// inside a block - and the order of the blocks themselves - preserves the
// original encounter order of the nodes, which is what keeps repeated
// layout calls stable before any sorting applies.
func buildBlocks(nodes []*Node, idx *gen.Index, desired map[gen.PersonID]float64, p Params) []*block {
	indexOf := make(map[gen.PersonID]int, len(nodes))
	for i, n := range nodes {
		indexOf[n.ID] = i
	}

	assigned := make([]bool, len(nodes))
	blocks := make([]*block, 0, len(nodes))

	for i, n := range nodes {
		if assigned[i] {
			continue
		}

		// Collect the spouse-connected component containing n.
		member := []int{i}
		assigned[i] = true
		queue := []gen.PersonID{n.ID}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, s := range idx.Spouses(curr) {
				j, ok := indexOf[s]
				if !ok || assigned[j] {
					continue
				}
				assigned[j] = true
				member = append(member, j)
				queue = append(queue, s)
			}
		}
		slices.Sort(member) // restore encounter order within the block

		b := &block{members: make([]*Node, len(member))}
		for k, j := range member {
			b.members[k] = nodes[j]
		}
		count := float64(len(b.members))
		b.height = count*p.NodeHeight + (count-1)*p.partnerGap()

		sum, pulled := 0.0, 0
		for _, m := range b.members {
			if d, ok := desired[m.ID]; ok {
				sum += d
				pulled++
			}
		}
		if pulled > 0 {
			b.desired = sum / float64(pulled)
			b.hasDesired = true
		}

		blocks = append(blocks, b)
	}

	return blocks
}
