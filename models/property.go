package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a rental listing (PG, hostel, flat or room). LegacyID carries
// over numeric identifiers from the pre-Mongo data set; it is only used for
// backward-compatible lookups, everything internal keys on the ObjectID.
type Property struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LegacyID      string             `bson:"legacyId,omitempty" json:"legacyId,omitempty"`
	Title         string             `bson:"title" json:"title" validate:"required"`
	Description   string             `bson:"description" json:"description"`
	Address       string             `bson:"address" json:"address"`
	City          string             `bson:"city" json:"city" validate:"required"`
	State         string             `bson:"state" json:"state"`
	Pincode       string             `bson:"pincode" json:"pincode"`
	Price         float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Category      string             `bson:"category" json:"category" validate:"required,oneof=single-room shared-room pg hostel flat"`
	Bedrooms      int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int                `bson:"bathrooms" json:"bathrooms"`
	AreaSqFt      float64            `bson:"areaSqFt" json:"areaSqFt"`
	Furnished     bool               `bson:"furnished" json:"furnished"`
	Parking       bool               `bson:"parking" json:"parking"`
	PetFriendly   bool               `bson:"petFriendly" json:"petFriendly"`
	Available     bool               `bson:"available" json:"available"`
	AvailableFrom time.Time          `bson:"availableFrom" json:"availableFrom"`
	Images        []string           `bson:"images" json:"images"`
	Amenities     []string           `bson:"amenities" json:"amenities"`
	OwnerID       primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Lat           float64            `bson:"lat" json:"lat"`
	Lng           float64            `bson:"lng" json:"lng"`
	Views         int64              `bson:"views" json:"views"`
	Featured      bool               `bson:"featured" json:"featured"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type UpdateAvailabilityRequest struct {
	Available     bool       `json:"available"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
}
