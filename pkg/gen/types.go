package gen

import "fmt"

// PersonID uniquely identifies a person. IDs are opaque to the engine;
// they come from the surrounding record-keeper and are never generated here.
type PersonID string

// Person is an immutable input record. The layout engine never creates or
// mutates people - it only places them.
type Person struct {
	ID        PersonID
	GivenName string
	Surname   string
	Living    bool
}

// SortKey returns the lexicographic tie-break key used when two layout
// blocks have equal desired positions. Surname first, then given name,
// so repeated layout calls order siblings identically.
func (p Person) SortKey() string { return p.Surname + "\x00" + p.GivenName }

// DisplayName returns "Given Surname", falling back to the ID when both
// name parts are empty.
func (p Person) DisplayName() string {
	switch {
	case p.GivenName == "" && p.Surname == "":
		return string(p.ID)
	case p.GivenName == "":
		return p.Surname
	case p.Surname == "":
		return p.GivenName
	}
	return p.GivenName + " " + p.Surname
}

// RelType is the closed set of relationship kinds. Keeping this a tagged
// variant (rather than free-form strings) forces every consumer to handle
// the full set explicitly; see [Index] for the exhaustive dispatch.
type RelType int

const (
	// RelParentChild is a directed relationship: From is the parent,
	// To is the child.
	RelParentChild RelType = iota
	// RelSpouse links two married people. Symmetric.
	RelSpouse
	// RelPartner links two unmarried partners. Symmetric, and treated
	// identically to RelSpouse everywhere in the engine.
	RelPartner
	// RelSibling links two siblings. Recorded in the data model but never
	// traversed by generation assignment or positioning: siblings only
	// cluster when they share a parent_child edge to the same parents.
	RelSibling
)

// String returns the wire name of the relationship type.
func (t RelType) String() string {
	switch t {
	case RelParentChild:
		return "parent_child"
	case RelSpouse:
		return "spouse"
	case RelPartner:
		return "partner"
	case RelSibling:
		return "sibling"
	}
	return fmt.Sprintf("RelType(%d)", int(t))
}

// ParseRelType converts a wire name to a RelType.
// Returns false for unknown names.
func ParseRelType(s string) (RelType, bool) {
	switch s {
	case "parent_child":
		return RelParentChild, true
	case "spouse":
		return RelSpouse, true
	case "partner":
		return RelPartner, true
	case "sibling":
		return RelSibling, true
	}
	return 0, false
}

// Relationship is a typed edge between two people. For RelParentChild the
// direction matters (From is the parent); the symmetric types treat both
// endpoints identically.
type Relationship struct {
	ID   string
	Type RelType
	From PersonID
	To   PersonID
}
