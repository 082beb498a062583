package store

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory implementation of Store. Documents keep their
// insertion order, which makes Find results stable for a fixed state.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string][]bson.M),
	}
}

// Insert stores a copy of the document with a freshly minted object id.
func (m *Memory) Insert(_ context.Context, collection string, doc bson.M) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make(bson.M, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	oid := primitive.NewObjectID()
	stored["_id"] = oid
	m.collections[collection] = append(m.collections[collection], stored)
	return oid.Hex(), nil
}

// Find returns documents matching every filter key, in insertion order.
func (m *Memory) Find(_ context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]bson.M, 0)
	for _, doc := range m.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		matched = append(matched, doc)
		if limit > 0 && int64(len(matched)) == limit {
			break
		}
	}
	return matched, nil
}

// FindOne returns the first document matching the filter or ErrNotFound.
func (m *Memory) FindOne(_ context.Context, collection string, filter bson.M) (bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			return doc, nil
		}
	}
	return nil, ErrNotFound
}

// Status reports the store as connected and lists its collections.
func (m *Memory) Status(_ context.Context) Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	return Status{
		Available:   true,
		Connected:   true,
		Database:    "memory",
		Collections: names,
	}
}

func matches(doc, filter bson.M) bool {
	for key, want := range filter {
		got, ok := doc[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
