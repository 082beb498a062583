package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToWire converts a store document into its wire form: the primary key
// field "_id" is renamed to "id" and stringified, and any other object id
// anywhere in the structure is stringified as well. A nil document maps
// to nil.
func ToWire(doc bson.M) map[string]interface{} {
	if doc == nil {
		return nil
	}
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if k == "_id" {
			out["id"] = wireValue(v)
			continue
		}
		out[k] = wireValue(v)
	}
	return out
}

func wireValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case bson.M:
		nested := make(map[string]interface{}, len(val))
		for k, nv := range val {
			nested[k] = wireValue(nv)
		}
		return nested
	case map[string]interface{}:
		nested := make(map[string]interface{}, len(val))
		for k, nv := range val {
			nested[k] = wireValue(nv)
		}
		return nested
	case bson.A:
		items := make([]interface{}, len(val))
		for i, nv := range val {
			items[i] = wireValue(nv)
		}
		return items
	case []interface{}:
		items := make([]interface{}, len(val))
		for i, nv := range val {
			items[i] = wireValue(nv)
		}
		return items
	default:
		return v
	}
}

// ParseID parses a wire id string into the store's native identifier
// type. A string that is not a valid 24-character hex object id fails
// with ErrInvalidID; callers check this before querying the store.
func ParseID(s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
