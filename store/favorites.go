package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dwelldash/models"
)

type MongoFavoriteStore struct {
	favorites  *mongo.Collection
	properties *mongo.Collection
	users      *mongo.Collection
}

func NewMongoFavoriteStore(favorites, properties, users *mongo.Collection) *MongoFavoriteStore {
	return &MongoFavoriteStore{
		favorites:  favorites,
		properties: properties,
		users:      users,
	}
}

func (s *MongoFavoriteStore) Add(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.PopulatedFavorite, error) {
	var property models.Property
	err := s.properties.FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}

	count, err := s.favorites.CountDocuments(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyFavorited
	}

	favorite := models.Favorite{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	if _, err := s.favorites.InsertOne(ctx, favorite); err != nil {
		// the loser of a concurrent Add for the same pair hits the
		// unique index here
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}

	populated := &models.PopulatedFavorite{Favorite: favorite, Property: &property}
	var owner models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": property.OwnerID}).Decode(&owner); err == nil {
		owner.Password = ""
		populated.Owner = &owner
	}
	return populated, nil
}

func (s *MongoFavoriteStore) Remove(ctx context.Context, userID, propertyID primitive.ObjectID) error {
	res, err := s.favorites.DeleteOne(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *MongoFavoriteStore) Exists(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	count, err := s.favorites.CountDocuments(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoFavoriteStore) Count(ctx context.Context, propertyID primitive.ObjectID) (int64, error) {
	return s.favorites.CountDocuments(ctx, bson.M{"propertyId": propertyID})
}

func (s *MongoFavoriteStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedFavorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.favorites.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	for cursor.Next(ctx) {
		var favorite models.Favorite
		if err := cursor.Decode(&favorite); err != nil {
			continue
		}
		favorites = append(favorites, favorite)
	}

	properties, err := s.propertiesByID(ctx, favorites)
	if err != nil {
		return nil, err
	}
	owners, err := s.ownersByID(ctx, properties)
	if err != nil {
		return nil, err
	}

	populated := make([]models.PopulatedFavorite, 0, len(favorites))
	for _, favorite := range favorites {
		entry := models.PopulatedFavorite{Favorite: favorite}
		if property, ok := properties[favorite.PropertyID]; ok {
			entry.Property = property
			if owner, ok := owners[property.OwnerID]; ok {
				entry.Owner = owner
			}
		}
		populated = append(populated, entry)
	}
	return populated, nil
}

func (s *MongoFavoriteStore) PropertyIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"propertyId": 1})
	cursor, err := s.favorites.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var favorite models.Favorite
		if err := cursor.Decode(&favorite); err != nil {
			continue
		}
		ids = append(ids, favorite.PropertyID.Hex())
	}
	return ids, nil
}

func (s *MongoFavoriteStore) RemoveAllForProperty(ctx context.Context, propertyID primitive.ObjectID) error {
	_, err := s.favorites.DeleteMany(ctx, bson.M{"propertyId": propertyID})
	return err
}

func (s *MongoFavoriteStore) propertiesByID(ctx context.Context, favorites []models.Favorite) (map[primitive.ObjectID]*models.Property, error) {
	properties := make(map[primitive.ObjectID]*models.Property)
	if len(favorites) == 0 {
		return properties, nil
	}
	ids := make([]primitive.ObjectID, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.PropertyID)
	}
	cursor, err := s.properties.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		p := property
		properties[property.ID] = &p
	}
	return properties, nil
}

func (s *MongoFavoriteStore) ownersByID(ctx context.Context, properties map[primitive.ObjectID]*models.Property) (map[primitive.ObjectID]*models.User, error) {
	owners := make(map[primitive.ObjectID]*models.User)
	if len(properties) == 0 {
		return owners, nil
	}
	ids := make([]primitive.ObjectID, 0, len(properties))
	for _, property := range properties {
		ids = append(ids, property.OwnerID)
	}
	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var owner models.User
		if err := cursor.Decode(&owner); err != nil {
			continue
		}
		owner.Password = ""
		o := owner
		owners[owner.ID] = &o
	}
	return owners, nil
}
