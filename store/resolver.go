package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Resolver maps client-supplied property identifiers to canonical
// ObjectIDs. It is the single place in the codebase that knows legacy
// numeric identifiers exist.
type Resolver struct {
	properties PropertyFinder
}

func NewResolver(properties PropertyFinder) *Resolver {
	return &Resolver{properties: properties}
}

// Resolve returns the canonical id for raw. A 24-hex string is canonical
// and passes through without a lookup; this check comes first, so a
// canonical id made up entirely of decimal digits is never treated as
// legacy. A digits-only string is looked up as a legacy id and yields
// ErrPropertyNotFound when no property carries it. Anything else is
// ErrInvalidPropertyID.
func (r *Resolver) Resolve(ctx context.Context, raw string) (primitive.ObjectID, error) {
	if id, err := primitive.ObjectIDFromHex(raw); err == nil {
		return id, nil
	}
	if !isAllDigits(raw) {
		return primitive.NilObjectID, ErrInvalidPropertyID
	}
	return r.properties.FindIDByLegacy(ctx, raw)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// MongoPropertyFinder resolves legacy ids with an indexed equality query
// on legacyId instead of scanning the collection; the unique sparse index
// guarantees at most one match.
type MongoPropertyFinder struct {
	collection *mongo.Collection
}

func NewMongoPropertyFinder(collection *mongo.Collection) *MongoPropertyFinder {
	return &MongoPropertyFinder{collection: collection}
}

func (f *MongoPropertyFinder) FindIDByLegacy(ctx context.Context, legacyID string) (primitive.ObjectID, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := f.collection.FindOne(ctx, bson.M{"legacyId": legacyID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, ErrPropertyNotFound
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return doc.ID, nil
}
