package pedigree

import (
	"testing"

	"github.com/lineagekit/lineage/pkg/gen"
)

var testParams = Params{NodeWidth: 180, NodeHeight: 54, HorizontalGap: 60}

// scenarioGraph builds the three-generation reference family: parents
// P1/P2, their children R (the root), S, and C-parent SP married to R,
// and R+SP's children C1/C2.
func scenarioGraph() (map[gen.PersonID]*gen.Person, []gen.Relationship) {
	people := map[gen.PersonID]*gen.Person{}
	add := func(id gen.PersonID, given, surname string) {
		people[id] = &gen.Person{ID: id, GivenName: given, Surname: surname}
	}
	add("P1", "Pat", "Adler")
	add("P2", "Quinn", "Adler")
	add("R", "Robin", "Adler")
	add("S", "Sam", "Adler")
	add("SP", "Taylor", "Brook")
	add("C1", "Uma", "Adler")
	add("C2", "Val", "Adler")

	rels := []gen.Relationship{
		{ID: "r1", Type: gen.RelParentChild, From: "P1", To: "R"},
		{ID: "r2", Type: gen.RelParentChild, From: "P2", To: "R"},
		{ID: "r3", Type: gen.RelParentChild, From: "P1", To: "S"},
		{ID: "r4", Type: gen.RelParentChild, From: "P2", To: "S"},
		{ID: "r5", Type: gen.RelSpouse, From: "P1", To: "P2"},
		{ID: "r6", Type: gen.RelSpouse, From: "R", To: "SP"},
		{ID: "r7", Type: gen.RelParentChild, From: "R", To: "C1"},
		{ID: "r8", Type: gen.RelParentChild, From: "R", To: "C2"},
	}
	return people, rels
}

func TestLayoutEmpty(t *testing.T) {
	r := Layout("nobody", map[gen.PersonID]*gen.Person{}, nil, testParams)
	if len(r.Nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(r.Nodes))
	}
	if len(r.Links) != 0 {
		t.Fatalf("expected no links, got %d", len(r.Links))
	}
	if r.Width != 0 || r.Height != 0 {
		t.Fatalf("expected zero canvas, got %gx%g", r.Width, r.Height)
	}
}

func TestLayoutIsolatedRoot(t *testing.T) {
	people := map[gen.PersonID]*gen.Person{
		"solo": {ID: "solo", GivenName: "Only", Surname: "One"},
	}
	r := Layout("solo", people, nil, testParams)
	if len(r.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(r.Nodes))
	}
	n := r.Nodes[0]
	if n.X != canvasPadding || n.Y != canvasPadding {
		t.Errorf("node at (%g,%g), want (%g,%g)", n.X, n.Y, canvasPadding, canvasPadding)
	}
	wantW := testParams.NodeWidth + 2*canvasPadding
	wantH := testParams.NodeHeight + 2*canvasPadding
	if r.Width != wantW || r.Height != wantH {
		t.Errorf("canvas %gx%g, want %gx%g", r.Width, r.Height, wantW, wantH)
	}
}

func TestLayoutScenario(t *testing.T) {
	people, rels := scenarioGraph()
	r := Layout("R", people, rels, testParams)

	if len(r.Nodes) != 7 {
		t.Fatalf("expected 7 nodes, got %d", len(r.Nodes))
	}

	wantGen := map[gen.PersonID]int{
		"P1": -1, "P2": -1,
		"R": 0, "S": 0, "SP": 0,
		"C1": 1, "C2": 1,
	}
	for id, want := range wantGen {
		n, ok := r.NodeByID[id]
		if !ok {
			t.Fatalf("node %q missing", id)
		}
		if n.Generation != want {
			t.Errorf("generation(%s) = %d, want %d", id, n.Generation, want)
		}
	}

	parentLinks, spouseLinks := 0, 0
	for _, l := range r.Links {
		switch l.Type {
		case LinkParent:
			parentLinks++
		case LinkSpouse:
			spouseLinks++
		}
	}
	if parentLinks != 6 {
		t.Errorf("parent links = %d, want 6", parentLinks)
	}
	if spouseLinks != 2 {
		t.Errorf("spouse links = %d, want 2", spouseLinks)
	}
}

func TestLayoutRootFamilyLinks(t *testing.T) {
	people, rels := scenarioGraph()
	r := Layout("R", people, rels, testParams)

	// Every link that touches the root is highlighted: P1->R, P2->R,
	// R->C1, R->C2 and the R-SP spouse link.
	touching := 0
	for _, l := range r.Links {
		if l.From.ID != "R" && l.To.ID != "R" {
			continue
		}
		touching++
		if !l.Highlighted {
			t.Errorf("link %s-%s touches the root but is not highlighted", l.From.ID, l.To.ID)
		}
	}
	if touching != 5 {
		t.Errorf("links touching root = %d, want 5", touching)
	}

	// Family highlighting is all-or-nothing: S's legs share the root's
	// parent family and light up with it.
	for _, l := range r.Links {
		if l.Type == LinkParent && l.To.ID == "S" && !l.Highlighted {
			t.Errorf("link %s->S shares the root's family and must be highlighted", l.From.ID)
		}
	}
}

func TestLayoutNoOverlap(t *testing.T) {
	people, rels := scenarioGraph()
	r := Layout("R", people, rels, testParams)

	byGen := map[int][]*Node{}
	for _, n := range r.Nodes {
		byGen[n.Generation] = append(byGen[n.Generation], n)
	}
	for g, nodes := range byGen {
		for i, a := range nodes {
			for _, b := range nodes[i+1:] {
				aTop, aBot := a.Y, a.Y+testParams.NodeHeight
				bTop, bBot := b.Y, b.Y+testParams.NodeHeight
				if aTop < bBot && bTop < aBot {
					t.Errorf("generation %d: %s [%g,%g] overlaps %s [%g,%g]",
						g, a.ID, aTop, aBot, b.ID, bTop, bBot)
				}
			}
		}
	}
}

func TestLayoutSpousesAdjacent(t *testing.T) {
	people, rels := scenarioGraph()
	r := Layout("R", people, rels, testParams)

	gap := testParams.NodeHeight + testParams.partnerGap()
	pairs := [][2]gen.PersonID{{"P1", "P2"}, {"R", "SP"}}
	for _, pair := range pairs {
		a, b := r.NodeByID[pair[0]], r.NodeByID[pair[1]]
		d := b.Y - a.Y
		if d < 0 {
			d = -d
		}
		if d != gap {
			t.Errorf("spouses %s/%s spaced %g apart, want %g", pair[0], pair[1], d, gap)
		}
	}
}

func TestLayoutColumns(t *testing.T) {
	people, rels := scenarioGraph()
	r := Layout("R", people, rels, testParams)

	stride := testParams.columnStride()
	for _, n := range r.Nodes {
		want := canvasPadding + float64(n.Generation+1)*stride
		if n.X != want {
			t.Errorf("x(%s) = %g, want %g", n.ID, n.X, want)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	people, rels := scenarioGraph()
	first := Layout("R", people, rels, testParams)
	for range 10 {
		again := Layout("R", people, rels, testParams)
		for _, n := range again.Nodes {
			orig := first.NodeByID[n.ID]
			if n.X != orig.X || n.Y != orig.Y {
				t.Fatalf("node %s moved between runs: (%g,%g) vs (%g,%g)",
					n.ID, orig.X, orig.Y, n.X, n.Y)
			}
		}
		if len(again.Links) != len(first.Links) {
			t.Fatalf("link count changed between runs: %d vs %d",
				len(first.Links), len(again.Links))
		}
	}
}

func TestLayoutDanglingRelationship(t *testing.T) {
	people, rels := scenarioGraph()
	rels = append(rels, gen.Relationship{
		ID: "dangling", Type: gen.RelParentChild, From: "R", To: "ghost",
	})
	r := Layout("R", people, rels, testParams)
	if _, ok := r.NodeByID["ghost"]; ok {
		t.Error("person missing from the people map must not produce a node")
	}
	for _, l := range r.Links {
		if l.From.ID == "ghost" || l.To.ID == "ghost" {
			t.Error("dangling relationship must not produce a link")
		}
	}
}

func TestLayoutMissingRoot(t *testing.T) {
	// The root id appears only in relationships; relatives reached
	// through it still lay out, the root itself produces no node.
	people := map[gen.PersonID]*gen.Person{
		"C1": {ID: "C1", GivenName: "Uma", Surname: "Adler"},
		"C2": {ID: "C2", GivenName: "Val", Surname: "Adler"},
		"D":  {ID: "D", GivenName: "Wes", Surname: "Brook"},
	}
	rels := []gen.Relationship{
		{ID: "r1", Type: gen.RelParentChild, From: "R", To: "C1"},
		{ID: "r2", Type: gen.RelParentChild, From: "R", To: "C2"},
		{ID: "r3", Type: gen.RelSpouse, From: "C1", To: "D"},
	}

	r := Layout("R", people, rels, testParams)

	if _, ok := r.NodeByID["R"]; ok {
		t.Error("root missing from the people map must not produce a node")
	}
	if len(r.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(r.Nodes))
	}
	for _, id := range []gen.PersonID{"C1", "C2", "D"} {
		if _, ok := r.NodeByID[id]; !ok {
			t.Errorf("person %s reached through the root must be placed", id)
		}
	}

	spouses := 0
	for _, l := range r.Links {
		if l.Type == LinkParent {
			t.Errorf("unresolved parent must not produce a link: %s->%s", l.From.ID, l.To.ID)
		}
		if l.Type == LinkSpouse {
			spouses++
			if l.Highlighted {
				t.Errorf("link %s-%s does not touch a placed root", l.From.ID, l.To.ID)
			}
		}
	}
	if spouses != 1 {
		t.Errorf("spouse links = %d, want 1", spouses)
	}
}

func TestLayoutUnreachableExcluded(t *testing.T) {
	people, rels := scenarioGraph()
	people["island"] = &gen.Person{ID: "island", GivenName: "No", Surname: "Body"}
	r := Layout("R", people, rels, testParams)
	if _, ok := r.NodeByID["island"]; ok {
		t.Error("person unreachable from the root must be excluded")
	}
}

func TestLayoutParentCentering(t *testing.T) {
	people, rels := scenarioGraph()
	r := Layout("R", people, rels, testParams)

	// After both sweeps the P1/P2 block center must lie within the
	// vertical span of its children's centers.
	center := func(id gen.PersonID) float64 {
		return r.NodeByID[id].Y + testParams.NodeHeight/2
	}
	blockCenter := (center("P1") + center("P2")) / 2
	lo, hi := center("R"), center("S")
	if lo > hi {
		lo, hi = hi, lo
	}
	if blockCenter < lo || blockCenter > hi {
		t.Errorf("parent block center %g outside children span [%g,%g]", blockCenter, lo, hi)
	}
}

func TestRouteFamily(t *testing.T) {
	people, rels := scenarioGraph()
	r := Layout("R", people, rels, testParams)

	fam := r.Families.ByID[r.FamilyByChild["C1"]]
	if fam == nil {
		t.Fatal("no family recorded for C1")
	}
	route := RouteFamily(fam, r)
	if route == nil {
		t.Fatal("expected a route for a fully resolved family")
	}
	if !route.Highlighted {
		t.Error("root's own family must be highlighted")
	}
	// 1 parent stub + 2 child runs + the gutter trunk.
	if len(route.Segments) != 4 {
		t.Fatalf("segments = %d, want 4", len(route.Segments))
	}

	wantGutter := r.NodeByID["R"].X + testParams.NodeWidth + testParams.HorizontalGap/2
	trunk := route.Segments[len(route.Segments)-1]
	if trunk.From.X != wantGutter || trunk.To.X != wantGutter {
		t.Errorf("gutter at x=%g, want %g", trunk.From.X, wantGutter)
	}
}

func TestRouteFamilyUnresolved(t *testing.T) {
	people, rels := scenarioGraph()
	r := Layout("R", people, rels, testParams)

	orphan := &gen.Family{
		ID:       "parents-ghost",
		Parents:  []gen.PersonID{"ghost"},
		Children: []gen.PersonID{"C1"},
	}
	if route := RouteFamily(orphan, r); route != nil {
		t.Error("family with no resolved parents must not route")
	}
}
