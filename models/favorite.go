package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite links one user to one property. The (userId, propertyId) pair is
// unique at the collection level; PropertyID is always the canonical id,
// legacy identifiers are resolved before the store is touched.
type Favorite struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// PopulatedFavorite is the read-side shape: the favorite with its property
// and the property's owner attached for display.
type PopulatedFavorite struct {
	Favorite `bson:",inline"`
	Property *Property `bson:"property,omitempty" json:"property,omitempty"`
	Owner    *User     `bson:"owner,omitempty" json:"owner,omitempty"`
}
