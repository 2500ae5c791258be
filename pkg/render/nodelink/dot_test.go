package nodelink

import (
	"strings"
	"testing"

	"github.com/lineagekit/lineage/pkg/gen"
)

func testGraph() (map[gen.PersonID]*gen.Person, []gen.Relationship) {
	people := map[gen.PersonID]*gen.Person{
		"a": {ID: "a", GivenName: "Ada", Surname: "Hill"},
		"b": {ID: "b", GivenName: "Ben", Surname: "Hill"},
		"c": {ID: "c", GivenName: "Cam", Surname: "Hill"},
	}
	rels := []gen.Relationship{
		{ID: "r1", Type: gen.RelParentChild, From: "a", To: "c"},
		{ID: "r2", Type: gen.RelSpouse, From: "a", To: "b"},
		{ID: "r3", Type: gen.RelSibling, From: "c", To: "b"},
	}
	return people, rels
}

func TestToDOT(t *testing.T) {
	people, rels := testGraph()
	dot := ToDOT(people, rels, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("output should be a digraph")
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("generations should run left to right")
	}
	if !strings.Contains(dot, `"a" -> "c";`) {
		t.Error("parent edge missing")
	}
	if !strings.Contains(dot, `"a" -> "b" [dir=none, style=dashed];`) {
		t.Error("spouse edge should be undirected and dashed")
	}
	if !strings.Contains(dot, `"c" -> "b" [dir=none, style=dotted, constraint=false];`) {
		t.Error("sibling edge should be dotted and non-constraining")
	}
	if !strings.Contains(dot, "Ada Hill") {
		t.Error("node labels should use display names")
	}
}

func TestToDOTRootHighlight(t *testing.T) {
	people, rels := testGraph()
	dot := ToDOT(people, rels, Options{Root: "a"})

	if !strings.Contains(dot, "fillcolor=lightyellow") {
		t.Error("root node should be highlighted")
	}
}

func TestToDOTDetailed(t *testing.T) {
	people, rels := testGraph()
	gens := map[gen.PersonID]int{"a": 0, "b": 0, "c": 1}

	dot := ToDOT(people, rels, Options{Detailed: true, Generations: gens})
	if !strings.Contains(dot, "generation: 1") {
		t.Error("detailed labels should include generations")
	}
}

func TestToDOTSkipsDanglingEdges(t *testing.T) {
	people, rels := testGraph()
	rels = append(rels, gen.Relationship{ID: "r4", Type: gen.RelParentChild, From: "a", To: "ghost"})

	dot := ToDOT(people, rels, Options{})
	if strings.Contains(dot, "ghost") {
		t.Error("edges to unknown people must be skipped")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	people, rels := testGraph()
	first := ToDOT(people, rels, Options{})
	for range 5 {
		if again := ToDOT(people, rels, Options{}); again != first {
			t.Fatal("repeated conversions must be identical")
		}
	}
}

func TestRenderSVG(t *testing.T) {
	people, rels := testGraph()
	dot := ToDOT(people, rels, Options{Root: "a"})

	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output should be an SVG document")
	}
	if !strings.Contains(string(svg), `viewBox="0 0`) {
		t.Error("viewBox should be normalized to the origin")
	}
	if !strings.Contains(string(svg), "Ada Hill") {
		t.Error("rendered SVG should carry node labels")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG("digraph {"); err == nil {
		t.Error("malformed DOT should fail")
	}
}
