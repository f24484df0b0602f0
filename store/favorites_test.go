package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockFavoriteStore(mt *mtest.T) *MongoFavoriteStore {
	db := mt.Coll.Database()
	return NewMongoFavoriteStore(db.Collection("favorites"), db.Collection("properties"), db.Collection("users"))
}

func propertyResponse(propertyID, ownerID primitive.ObjectID) bson.D {
	return mtest.CreateCursorResponse(0, "dwelldash.properties", mtest.FirstBatch, bson.D{
		{Key: "_id", Value: propertyID},
		{Key: "title", Value: "Sunrise PG"},
		{Key: "ownerId", Value: ownerID},
	})
}

func countResponse(n int32) bson.D {
	return mtest.CreateCursorResponse(0, "dwelldash.favorites", mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

func TestMongoFavoriteStoreAdd(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		s := newMockFavoriteStore(mt)
		userID := primitive.NewObjectID()
		propertyID := primitive.NewObjectID()
		ownerID := primitive.NewObjectID()

		mt.AddMockResponses(
			propertyResponse(propertyID, ownerID),
			countResponse(0),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, "dwelldash.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: ownerID},
				{Key: "name", Value: "Asha"},
				{Key: "password", Value: "bcrypt-hash"},
			}),
		)

		favorite, err := s.Add(context.Background(), userID, propertyID)
		assert.NoError(t, err)
		assert.Equal(t, userID, favorite.UserID)
		assert.Equal(t, propertyID, favorite.PropertyID)
		assert.Equal(t, "Sunrise PG", favorite.Property.Title)
		assert.Equal(t, "", favorite.Owner.Password, "owner credential must not leak into the populated favorite")
	})

	mt.Run("existing pair", func(mt *mtest.T) {
		s := newMockFavoriteStore(mt)
		propertyID := primitive.NewObjectID()

		mt.AddMockResponses(
			propertyResponse(propertyID, primitive.NewObjectID()),
			countResponse(1),
		)

		_, err := s.Add(context.Background(), primitive.NewObjectID(), propertyID)
		assert.ErrorIs(t, err, ErrAlreadyFavorited)
	})

	mt.Run("duplicate key race", func(mt *mtest.T) {
		// two concurrent Adds for the same pair: the loser passes the
		// pre-check but hits the unique index on insert
		s := newMockFavoriteStore(mt)
		propertyID := primitive.NewObjectID()

		mt.AddMockResponses(
			propertyResponse(propertyID, primitive.NewObjectID()),
			countResponse(0),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   1,
				Code:    11000,
				Message: "duplicate key error",
			}),
		)

		_, err := s.Add(context.Background(), primitive.NewObjectID(), propertyID)
		assert.ErrorIs(t, err, ErrAlreadyFavorited)
	})

	mt.Run("missing property", func(mt *mtest.T) {
		s := newMockFavoriteStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "dwelldash.properties", mtest.FirstBatch))

		_, err := s.Add(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})
}

func TestMongoFavoriteStoreRemove(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deletes the pair", func(mt *mtest.T) {
		s := newMockFavoriteStore(mt)

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "acknowledged", Value: true},
			{Key: "n", Value: 1},
		})

		err := s.Remove(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.NoError(t, err)
	})

	mt.Run("absent pair", func(mt *mtest.T) {
		s := newMockFavoriteStore(mt)

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "acknowledged", Value: true},
			{Key: "n", Value: 0},
		})

		err := s.Remove(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrFavoriteNotFound)
	})
}

func TestMongoFavoriteStoreExists(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("present", func(mt *mtest.T) {
		s := newMockFavoriteStore(mt)
		mt.AddMockResponses(countResponse(1))

		favorited, err := s.Exists(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.NoError(t, err)
		assert.True(t, favorited)
	})

	mt.Run("absent", func(mt *mtest.T) {
		s := newMockFavoriteStore(mt)
		mt.AddMockResponses(countResponse(0))

		favorited, err := s.Exists(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.NoError(t, err)
		assert.False(t, favorited)
	})
}

func TestMongoFavoriteStoreCount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("counts favorites", func(mt *mtest.T) {
		s := newMockFavoriteStore(mt)
		mt.AddMockResponses(countResponse(3))

		count, err := s.Count(context.Background(), primitive.NewObjectID())
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestMongoPropertyFinder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("legacy hit", func(mt *mtest.T) {
		finder := NewMongoPropertyFinder(mt.Coll)
		canonical := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "dwelldash.properties", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: canonical},
		}))

		id, err := finder.FindIDByLegacy(context.Background(), "1749545967172")
		assert.NoError(t, err)
		assert.Equal(t, canonical, id)
	})

	mt.Run("legacy miss", func(mt *mtest.T) {
		finder := NewMongoPropertyFinder(mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "dwelldash.properties", mtest.FirstBatch))

		_, err := finder.FindIDByLegacy(context.Background(), "42")
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})
}
