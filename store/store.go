// Package store holds the favorites persistence layer and the property
// identity resolver. Handlers translate the sentinel errors below into
// HTTP statuses; anything else is an unexpected storage failure.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"dwelldash/models"
)

var (
	ErrInvalidPropertyID = errors.New("invalid property id")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrFavoriteNotFound  = errors.New("favorite not found")
	ErrAlreadyFavorited  = errors.New("property already favorited")
)

// PropertyFinder is the lookup the resolver needs for legacy identifiers.
type PropertyFinder interface {
	FindIDByLegacy(ctx context.Context, legacyID string) (primitive.ObjectID, error)
}

// FavoriteStore operates on canonical property ids only; callers resolve
// client-supplied identifiers first.
type FavoriteStore interface {
	Add(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.PopulatedFavorite, error)
	Remove(ctx context.Context, userID, propertyID primitive.ObjectID) error
	Exists(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error)
	Count(ctx context.Context, propertyID primitive.ObjectID) (int64, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedFavorite, error)
	PropertyIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]string, error)
	RemoveAllForProperty(ctx context.Context, propertyID primitive.ObjectID) error
}
