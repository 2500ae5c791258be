// Package graph defines the wire representation of a genealogy graph and
// the codec between it and the engine types. Sources (local files, MongoDB)
// decode into Graph; the pipeline converts it to engine input with ToEngine.
package graph

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/gen"
)

// Person is the wire form of one person record.
type Person struct {
	ID        string `json:"id" bson:"id"`
	GivenName string `json:"givenName" bson:"given_name"`
	Surname   string `json:"surname" bson:"surname"`
	Living    bool   `json:"living" bson:"living"`
}

// Relationship is the wire form of one relationship record. For
// parent_child relationships Person1 is the parent and Person2 the child;
// the symmetric types carry their endpoints in either order.
type Relationship struct {
	ID      string `json:"id,omitempty" bson:"id,omitempty"`
	Type    string `json:"type" bson:"type"`
	Person1 string `json:"person1" bson:"person1"`
	Person2 string `json:"person2" bson:"person2"`
}

// Graph is a complete genealogy dataset as stored and transported.
type Graph struct {
	People        []Person       `json:"people" bson:"people"`
	Relationships []Relationship `json:"relationships" bson:"relationships"`
}

// ToEngine validates the graph and converts it to engine input. Missing
// relationship ids are filled with generated UUIDs so downstream
// bookkeeping always has a stable handle. Duplicate person ids, empty
// person ids, unknown relationship types and self-referential
// relationships are rejected.
func (g *Graph) ToEngine() (map[gen.PersonID]*gen.Person, []gen.Relationship, error) {
	people := make(map[gen.PersonID]*gen.Person, len(g.People))
	for _, p := range g.People {
		if err := errors.ValidatePersonID(p.ID); err != nil {
			return nil, nil, err
		}
		id := gen.PersonID(p.ID)
		if _, ok := people[id]; ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidPerson, "duplicate person id: %q", p.ID)
		}
		people[id] = &gen.Person{
			ID:        id,
			GivenName: p.GivenName,
			Surname:   p.Surname,
			Living:    p.Living,
		}
	}

	rels := make([]gen.Relationship, 0, len(g.Relationships))
	for _, r := range g.Relationships {
		typ, ok := gen.ParseRelType(r.Type)
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidRelationship, "unknown relationship type: %q", r.Type)
		}
		if r.Person1 == "" || r.Person2 == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidRelationship, "relationship %q is missing an endpoint", r.ID)
		}
		if r.Person1 == r.Person2 {
			return nil, nil, errors.New(errors.ErrCodeInvalidRelationship, "relationship %q links %q to itself", r.ID, r.Person1)
		}

		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}

		rels = append(rels, gen.Relationship{
			ID:   id,
			Type: typ,
			From: gen.PersonID(r.Person1),
			To:   gen.PersonID(r.Person2),
		})
	}

	return people, rels, nil
}

// FromEngine converts engine types back to the wire form, preserving the
// given iteration order of rels. The people map is emitted in the order of
// ids, so round-trips are deterministic.
func FromEngine(people []*gen.Person, rels []gen.Relationship) *Graph {
	g := &Graph{
		People:        make([]Person, 0, len(people)),
		Relationships: make([]Relationship, 0, len(rels)),
	}
	for _, p := range people {
		g.People = append(g.People, Person{
			ID:        string(p.ID),
			GivenName: p.GivenName,
			Surname:   p.Surname,
			Living:    p.Living,
		})
	}
	for _, r := range rels {
		g.Relationships = append(g.Relationships, Relationship{
			ID:      r.ID,
			Type:    r.Type.String(),
			Person1: string(r.From),
			Person2: string(r.To),
		})
	}
	return g
}

// UnmarshalGraph decodes a JSON document into a Graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse graph JSON")
	}
	return &g, nil
}

// MarshalGraph encodes a Graph as indented JSON.
func MarshalGraph(g *Graph) ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode graph JSON")
	}
	return data, nil
}
