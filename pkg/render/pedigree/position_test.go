package pedigree

import (
	"testing"

	"github.com/lineagekit/lineage/pkg/gen"
)

func TestDescendantSweepStacksUnpulled(t *testing.T) {
	nodes := []*Node{
		nodeFor("b", "Ben", "Hill"),
		nodeFor("a", "Ada", "Hill"),
	}
	idx := gen.NewIndex(nil)
	pos := map[gen.PersonID]float64{}

	descendantSweep(nodes, idx, pos, testParams)

	// No pulls anywhere: blocks sort by name and stack from zero.
	if pos["a"] != 0 {
		t.Errorf("Ada at %g, want 0", pos["a"])
	}
	want := testParams.NodeHeight + rowGap
	if pos["b"] != want {
		t.Errorf("Ben at %g, want %g", pos["b"], want)
	}
}

func TestDescendantSweepPullsTowardChildren(t *testing.T) {
	parent := nodeFor("p", "Pat", "Hill")
	idx := gen.NewIndex([]gen.Relationship{
		{ID: "r1", Type: gen.RelParentChild, From: "p", To: "c1"},
		{ID: "r2", Type: gen.RelParentChild, From: "p", To: "c2"},
	})
	pos := map[gen.PersonID]float64{"c1": 100, "c2": 300}

	descendantSweep([]*Node{parent}, idx, pos, testParams)

	// Children centers: 127 and 327, mean 227; parent centered there.
	want := 227 - testParams.NodeHeight/2
	if pos["p"] != want {
		t.Errorf("parent at %g, want %g", pos["p"], want)
	}
}

func TestDescendantSweepClampsOverlap(t *testing.T) {
	// Both parents pulled to the same center: the second must land
	// below the first, separated by the row gap.
	a := nodeFor("a", "Ada", "Hill")
	b := nodeFor("b", "Ben", "Hill")
	idx := gen.NewIndex([]gen.Relationship{
		{ID: "r1", Type: gen.RelParentChild, From: "a", To: "c"},
		{ID: "r2", Type: gen.RelParentChild, From: "b", To: "c"},
	})
	pos := map[gen.PersonID]float64{"c": 200}

	descendantSweep([]*Node{a, b}, idx, pos, testParams)

	if pos["b"] < pos["a"]+testParams.NodeHeight+rowGap {
		t.Errorf("overlap: Ada at %g, Ben at %g", pos["a"], pos["b"])
	}
}

func TestAncestorSweepBlend(t *testing.T) {
	child := nodeFor("c", "Cam", "Hill")
	idx := gen.NewIndex([]gen.Relationship{
		{ID: "r1", Type: gen.RelParentChild, From: "p", To: "c"},
	})
	// Child starts at 400; its parent sits at 0, so the desired tops match.
	pos := map[gen.PersonID]float64{"c": 400, "p": 0}

	ancestorSweep([]*Node{child}, idx, pos, testParams)

	// desired center = parent center = NodeHeight/2, so desired top = 0;
	// blended top = 400 + 0.65*(0-400) = 140.
	if pos["c"] != 140 {
		t.Errorf("child at %g, want 140", pos["c"])
	}
}

func TestAncestorSweepKeepsOrder(t *testing.T) {
	a := nodeFor("a", "Ada", "Hill")
	b := nodeFor("b", "Ben", "Hill")
	idx := gen.NewIndex([]gen.Relationship{
		{ID: "r1", Type: gen.RelParentChild, From: "p", To: "b"},
	})
	// Ada above Ben; Ben's parent pulls it far above Ada. The clamp
	// must keep Ben below Ada.
	pos := map[gen.PersonID]float64{"a": 0, "b": 200, "p": -500}

	ancestorSweep([]*Node{a, b}, idx, pos, testParams)

	if pos["b"] < pos["a"]+testParams.NodeHeight+rowGap {
		t.Errorf("order violated: Ada at %g, Ben at %g", pos["a"], pos["b"])
	}
}

func TestMeanCenter(t *testing.T) {
	pos := map[gen.PersonID]float64{"a": 0, "b": 100}

	c, ok := meanCenter([]gen.PersonID{"a", "b"}, pos, testParams)
	if !ok {
		t.Fatal("expected a center for placed ids")
	}
	want := 50 + testParams.NodeHeight/2
	if c != want {
		t.Errorf("center = %g, want %g", c, want)
	}

	if _, ok := meanCenter([]gen.PersonID{"ghost"}, pos, testParams); ok {
		t.Error("unplaced ids must yield no center")
	}
}
