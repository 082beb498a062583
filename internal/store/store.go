package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrUnavailable means the adapter has no live connection to the store.
	ErrUnavailable = errors.New("document store unavailable")
	// ErrNotFound means no document matched the filter.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID means an id string is not a structurally valid object id.
	ErrInvalidID = errors.New("invalid object id")
)

// Store defines the interface for document storage.
// Filters are equality-conjunction maps: every key must equal its value.
type Store interface {
	// Insert adds a document to the collection and returns the assigned
	// id in string form.
	Insert(ctx context.Context, collection string, doc bson.M) (string, error)

	// Find returns documents matching the filter in the store's natural
	// order. A limit of zero or less means unbounded.
	Find(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error)

	// FindOne returns the first document matching the filter, or
	// ErrNotFound.
	FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error)

	// Status reports availability and diagnostic metadata. It never
	// fails; problems are described in the returned struct.
	Status(ctx context.Context) Status
}

// Status describes the adapter's connection for the diagnostic endpoint.
type Status struct {
	Available   bool
	Connected   bool
	Database    string
	Collections []string
	Err         string
}
