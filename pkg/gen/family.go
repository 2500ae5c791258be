package gen

import (
	"slices"
	"strings"
)

// FamilyID identifies a family unit. It is derived purely from the sorted,
// deduplicated set of parent ids, so any two children with the same parents
// resolve to the same family no matter how many children reference them or
// in which order the relationships arrived.
type FamilyID string

// Family is a derived grouping of children by their exact parent set.
// Families exist so multi-child connector lines can share one trunk instead
// of N crossing diagonals.
type Family struct {
	ID       FamilyID
	Parents  []PersonID
	Children []PersonID
}

// MakeFamilyID derives the canonical family id for a set of parents:
// "single-<id>" for one parent, "parents-<a>-<b>..." for several, sorted
// and deduplicated. Returns "" for an empty parent set - such families are
// never created.
func MakeFamilyID(parents []PersonID) FamilyID {
	if len(parents) == 0 {
		return ""
	}

	sorted := slices.Clone(parents)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	if len(sorted) == 1 {
		return FamilyID("single-" + string(sorted[0]))
	}

	var b strings.Builder
	b.WriteString("parents")
	for _, p := range sorted {
		b.WriteByte('-')
		b.WriteString(string(p))
	}
	return FamilyID(b.String())
}

// Families is the output of family grouping: the family units plus the
// child→family lookup the link router needs.
type Families struct {
	ByID    map[FamilyID]*Family
	ByChild map[PersonID]FamilyID

	// order preserves family creation order for deterministic iteration.
	order []FamilyID
}

// All returns the families in creation order (the order the first child of
// each family was encountered).
func (f *Families) All() []*Family {
	out := make([]*Family, len(f.order))
	for i, id := range f.order {
		out[i] = f.ByID[id]
	}
	return out
}

// GroupFamilies clusters every child with at least one recorded parent into
// a family keyed by its parent set. Children with zero recorded parents are
// not placed in any family. A family with more than two parents is not an
// error; it simply carries all of them and the renderer branches from the
// centroid of however many parents exist.
func GroupFamilies(idx *Index) *Families {
	fams := &Families{
		ByID:    make(map[FamilyID]*Family),
		ByChild: make(map[PersonID]FamilyID),
	}

	for _, child := range idx.ChildIDs() {
		parents := idx.Parents(child)
		id := MakeFamilyID(parents)
		if id == "" {
			continue
		}

		fam, ok := fams.ByID[id]
		if !ok {
			sorted := slices.Clone(parents)
			slices.Sort(sorted)
			sorted = slices.Compact(sorted)
			fam = &Family{ID: id, Parents: sorted}
			fams.ByID[id] = fam
			fams.order = append(fams.order, id)
		}
		fam.Children = append(fam.Children, child)
		fams.ByChild[child] = id
	}

	return fams
}
