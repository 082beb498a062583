package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a MongoDB-backed implementation of Store.
//
// Construction never fails the caller: if the URI is empty or the client
// cannot be built, the adapter starts degraded and every operation
// returns ErrUnavailable. There is no reconnect logic.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect builds a Mongo adapter for the given connection string and
// database name. A degraded adapter is returned instead of an error when
// the connection cannot be established.
func Connect(ctx context.Context, uri, dbName string) *Mongo {
	if uri == "" {
		log.Println("No store connection string configured, starting without a store")
		return &Mongo{}
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Printf("Failed to connect to document store: %v", err)
		return &Mongo{}
	}
	return &Mongo{client: client, db: client.Database(dbName)}
}

// Close releases the underlying client. Safe to call on a degraded adapter.
func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// Insert adds a document and returns the assigned object id as a hex string.
func (m *Mongo) Insert(ctx context.Context, collection string, doc bson.M) (string, error) {
	if m.db == nil {
		return "", ErrUnavailable
	}
	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Find returns documents matching the filter, capped by limit when positive.
func (m *Mongo) Find(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	if m.db == nil {
		return nil, ErrUnavailable
	}
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := m.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s documents: %w", collection, err)
	}
	return docs, nil
}

// FindOne returns the first matching document or ErrNotFound.
func (m *Mongo) FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error) {
	if m.db == nil {
		return nil, ErrUnavailable
	}
	var doc bson.M
	err := m.db.Collection(collection).FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return doc, nil
}

// Status pings the store and lists its collections for diagnostics.
func (m *Mongo) Status(ctx context.Context) Status {
	s := Status{}
	if m.db == nil {
		s.Err = "not connected"
		return s
	}
	s.Available = true
	s.Database = m.db.Name()

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := m.client.Ping(pingCtx, nil); err != nil {
		s.Err = err.Error()
		return s
	}
	s.Connected = true

	names, err := m.db.ListCollectionNames(pingCtx, bson.M{})
	if err != nil {
		s.Err = err.Error()
		return s
	}
	s.Collections = names
	return s
}
