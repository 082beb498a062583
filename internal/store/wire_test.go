package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vollara/internal/store"
)

func TestToWireRenamesAndStringifiesPrimaryKey(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := bson.M{
		"_id":   oid,
		"title": "Living Water",
		"price": 1299.0,
	}

	wire := store.ToWire(doc)

	assert.NotContains(t, wire, "_id")
	assert.Equal(t, oid.Hex(), wire["id"])
	assert.Equal(t, "Living Water", wire["title"])
	assert.Equal(t, 1299.0, wire["price"])
}

func TestToWireStringifiesNestedObjectIDs(t *testing.T) {
	related := primitive.NewObjectID()
	doc := bson.M{
		"_id": primitive.NewObjectID(),
		"meta": bson.M{
			"related": related,
		},
		"refs": bson.A{related, "plain"},
	}

	wire := store.ToWire(doc)

	meta := wire["meta"].(map[string]interface{})
	assert.Equal(t, related.Hex(), meta["related"])
	refs := wire["refs"].([]interface{})
	assert.Equal(t, related.Hex(), refs[0])
	assert.Equal(t, "plain", refs[1])
}

func TestToWireNilIsNil(t *testing.T) {
	assert.Nil(t, store.ToWire(nil))
}

func TestParseIDRoundTrip(t *testing.T) {
	s := primitive.NewObjectID().Hex()
	oid, err := store.ParseID(s)
	assert.NoError(t, err)
	assert.Equal(t, s, oid.Hex())

	wire := store.ToWire(bson.M{"_id": oid})
	assert.Equal(t, s, wire["id"])
}

func TestParseIDRejectsMalformedStrings(t *testing.T) {
	for _, s := range []string{"", "not-an-id", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := store.ParseID(s)
		assert.ErrorIs(t, err, store.ErrInvalidID, "input %q", s)
	}
}
