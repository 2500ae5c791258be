package pedigree

import "github.com/lineagekit/lineage/pkg/gen"

// routeLinks produces the drawable link list: one parent link per
// resolved parent/child pair in every family, then one spouse link per
// spouse or partner relationship. A family's links are all highlighted
// when the root is among its resolved parents or children.
func routeLinks(root gen.PersonID, fams *gen.Families, rels []gen.Relationship, nodeByID map[gen.PersonID]*Node) []Link {
	resolve := func(ids []gen.PersonID) []*Node {
		out := make([]*Node, 0, len(ids))
		for _, id := range ids {
			if n, ok := nodeByID[id]; ok {
				out = append(out, n)
			}
		}
		return out
	}

	links := make([]Link, 0, len(rels))

	for _, f := range fams.All() {
		parents := resolve(f.Parents)
		children := resolve(f.Children)
		if len(parents) == 0 || len(children) == 0 {
			continue
		}

		highlighted := false
		for _, n := range parents {
			highlighted = highlighted || n.ID == root
		}
		for _, n := range children {
			highlighted = highlighted || n.ID == root
		}

		for _, p := range parents {
			for _, c := range children {
				links = append(links, Link{
					From:        p,
					To:          c,
					Type:        LinkParent,
					Highlighted: highlighted,
				})
			}
		}
	}

	for _, rel := range rels {
		if rel.Type != gen.RelSpouse && rel.Type != gen.RelPartner {
			continue
		}
		from, ok := nodeByID[rel.From]
		if !ok {
			continue
		}
		to, ok := nodeByID[rel.To]
		if !ok {
			continue
		}
		links = append(links, Link{
			From:        from,
			To:          to,
			Type:        LinkSpouse,
			Highlighted: from.ID == root || to.ID == root,
		})
	}

	return links
}
