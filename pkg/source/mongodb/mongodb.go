// Package mongodb loads genealogy graphs from a MongoDB database, where
// people and relationships live in two collections. This is the source
// used when Lineage runs next to a record-keeping application that owns
// the data.
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/graph"
	"github.com/lineagekit/lineage/pkg/observability"
	"github.com/lineagekit/lineage/pkg/source"
)

// Collection names within the configured database.
const (
	peopleCollection        = "people"
	relationshipsCollection = "relationships"
)

// Source reads a graph from a MongoDB database.
type Source struct {
	client *mongo.Client
	db     string
}

// NewSource connects to MongoDB and verifies the connection with a ping.
// Call Close when done.
func NewSource(ctx context.Context, uri, db string) (*Source, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "MongoDB ping failed")
	}
	return &Source{client: client, db: db}, nil
}

// Name implements [source.Source].
func (s *Source) Name() string { return "mongodb" }

// Load reads all people and relationships from their collections. Sort
// order is fixed by id and insertion order respectively, so repeated
// loads feed the engine identical input.
func (s *Source) Load(ctx context.Context) (*graph.Graph, error) {
	hooks := observability.Source()
	hooks.OnQuery(ctx, s.Name(), "load")
	start := time.Now()

	g := &graph.Graph{}

	peopleOpts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := s.client.Database(s.db).Collection(peopleCollection).Find(ctx, bson.D{}, peopleOpts)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeStorage, err, "failed to query people")
		hooks.OnError(ctx, s.Name(), "load", err)
		return nil, err
	}
	if err := cursor.All(ctx, &g.People); err != nil {
		err = errors.Wrap(errors.ErrCodeStorage, err, "failed to decode people")
		hooks.OnError(ctx, s.Name(), "load", err)
		return nil, err
	}

	cursor, err = s.client.Database(s.db).Collection(relationshipsCollection).Find(ctx, bson.D{})
	if err != nil {
		err = errors.Wrap(errors.ErrCodeStorage, err, "failed to query relationships")
		hooks.OnError(ctx, s.Name(), "load", err)
		return nil, err
	}
	if err := cursor.All(ctx, &g.Relationships); err != nil {
		err = errors.Wrap(errors.ErrCodeStorage, err, "failed to decode relationships")
		hooks.OnError(ctx, s.Name(), "load", err)
		return nil, err
	}

	hooks.OnResult(ctx, s.Name(), "load", time.Since(start))
	return g, nil
}

// Close disconnects the underlying client.
func (s *Source) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure Source implements source.Source.
var _ source.Source = (*Source)(nil)
