package gen

// AssignGenerations runs a breadth-first traversal from root and returns
// the generation of every reachable person, relative to the root: root = 0,
// ancestors negative, descendants positive, spouses level with their
// partner.
//
// The first visit wins. A person reached again via another path keeps the
// generation from the first visit, which is what lets cyclic or
// reconvergent ancestry terminate without contradiction - there is no
// explicit cycle detection and none is needed. People unreachable from the
// root are simply absent from the result.
//
// Sibling edges are not traversed: a sibling only lands in generation 0
// when a parent_child edge connects them through a shared parent.
func AssignGenerations(root PersonID, idx *Index) map[PersonID]int {
	gens := map[PersonID]int{root: 0}
	queue := []PersonID{root}

	visit := func(id PersonID, gen int, queueTail []PersonID) []PersonID {
		if _, seen := gens[id]; seen {
			return queueTail
		}
		gens[id] = gen
		return append(queueTail, id)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		gen := gens[curr]

		for _, p := range idx.Parents(curr) {
			queue = visit(p, gen-1, queue)
		}
		for _, c := range idx.Children(curr) {
			queue = visit(c, gen+1, queue)
		}
		for _, s := range idx.Spouses(curr) {
			queue = visit(s, gen, queue)
		}
	}

	return gens
}

// MinGeneration returns the smallest generation in the map, or 0 for an
// empty map. Layout code uses this to shift generations to a zero-based
// column index: column = generation - MinGeneration.
func MinGeneration(gens map[PersonID]int) int {
	min, first := 0, true
	for _, g := range gens {
		if first || g < min {
			min, first = g, false
		}
	}
	return min
}
