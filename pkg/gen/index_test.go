package gen

import (
	"slices"
	"testing"
)

func TestNewIndex(t *testing.T) {
	tests := []struct {
		name         string
		rels         []Relationship
		wantChildren map[PersonID][]PersonID
		wantParents  map[PersonID][]PersonID
		wantSpouses  map[PersonID][]PersonID
	}{
		{
			name: "Empty",
		},
		{
			name: "ParentChild",
			rels: []Relationship{
				{ID: "r1", Type: RelParentChild, From: "p1", To: "c1"},
				{ID: "r2", Type: RelParentChild, From: "p1", To: "c2"},
				{ID: "r3", Type: RelParentChild, From: "p2", To: "c1"},
			},
			wantChildren: map[PersonID][]PersonID{
				"p1": {"c1", "c2"},
				"p2": {"c1"},
			},
			wantParents: map[PersonID][]PersonID{
				"c1": {"p1", "p2"},
				"c2": {"p1"},
			},
		},
		{
			name: "SpousePartnerMerged",
			rels: []Relationship{
				{ID: "r1", Type: RelSpouse, From: "a", To: "b"},
				{ID: "r2", Type: RelPartner, From: "a", To: "c"},
			},
			wantSpouses: map[PersonID][]PersonID{
				"a": {"b", "c"},
				"b": {"a"},
				"c": {"a"},
			},
		},
		{
			name: "SiblingIgnored",
			rels: []Relationship{
				{ID: "r1", Type: RelSibling, From: "a", To: "b"},
			},
		},
		{
			name: "DuplicatesKept",
			rels: []Relationship{
				{ID: "r1", Type: RelParentChild, From: "p", To: "c"},
				{ID: "r2", Type: RelParentChild, From: "p", To: "c"},
			},
			wantChildren: map[PersonID][]PersonID{"p": {"c", "c"}},
			wantParents:  map[PersonID][]PersonID{"c": {"p", "p"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewIndex(tt.rels)

			for id, want := range tt.wantChildren {
				if got := idx.Children(id); !slices.Equal(got, want) {
					t.Errorf("Children(%s) = %v, want %v", id, got, want)
				}
			}
			for id, want := range tt.wantParents {
				if got := idx.Parents(id); !slices.Equal(got, want) {
					t.Errorf("Parents(%s) = %v, want %v", id, got, want)
				}
			}
			for id, want := range tt.wantSpouses {
				if got := idx.Spouses(id); !slices.Equal(got, want) {
					t.Errorf("Spouses(%s) = %v, want %v", id, got, want)
				}
			}
		})
	}
}

func TestNewIndexSiblingNotIndexed(t *testing.T) {
	idx := NewIndex([]Relationship{
		{ID: "r1", Type: RelSibling, From: "a", To: "b"},
	})
	if got := idx.Spouses("a"); got != nil {
		t.Errorf("Spouses(a) = %v, want nil", got)
	}
	if got := idx.Parents("b"); got != nil {
		t.Errorf("Parents(b) = %v, want nil", got)
	}
	if got := idx.ChildIDs(); got != nil {
		t.Errorf("ChildIDs() = %v, want nil", got)
	}
}

func TestNewIndexChildOrder(t *testing.T) {
	idx := NewIndex([]Relationship{
		{ID: "r1", Type: RelParentChild, From: "p1", To: "c2"},
		{ID: "r2", Type: RelParentChild, From: "p1", To: "c1"},
		{ID: "r3", Type: RelParentChild, From: "p2", To: "c2"}, // c2 already seen
	})
	want := []PersonID{"c2", "c1"}
	if got := idx.ChildIDs(); !slices.Equal(got, want) {
		t.Errorf("ChildIDs() = %v, want %v", got, want)
	}
}

func TestParseRelType(t *testing.T) {
	tests := []struct {
		in     string
		want   RelType
		wantOK bool
	}{
		{"parent_child", RelParentChild, true},
		{"spouse", RelSpouse, true},
		{"partner", RelPartner, true},
		{"sibling", RelSibling, true},
		{"cousin", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseRelType(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseRelType(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRelTypeRoundTrip(t *testing.T) {
	for _, rt := range []RelType{RelParentChild, RelSpouse, RelPartner, RelSibling} {
		got, ok := ParseRelType(rt.String())
		if !ok || got != rt {
			t.Errorf("ParseRelType(%q) = %v, %v, want %v, true", rt.String(), got, ok, rt)
		}
	}
}
