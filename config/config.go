package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

func ConnectDB() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "dwelldash"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	DB = client.Database(dbName)
	log.Printf("Connected to MongoDB database %q", dbName)
}

func GetCollection(name string) *mongo.Collection {
	return DB.Collection(name)
}

// EnsureIndexes creates the indexes the application relies on for
// correctness: unique user emails, the unique (userId, propertyId) pair
// that arbitrates concurrent favorite inserts, and the unique sparse
// legacyId index that both speeds up legacy lookups and rules out
// ambiguous migrated identifiers.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usersName := os.Getenv("MONGODB_COLLECTION_USERS")
	if usersName == "" {
		usersName = "users"
	}
	favoritesName := os.Getenv("MONGODB_COLLECTION_FAVORITES")
	if favoritesName == "" {
		favoritesName = "favorites"
	}
	propertiesName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if propertiesName == "" {
		propertiesName = "properties"
	}

	_, err := GetCollection(usersName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("Failed to create users email index: %v", err)
	}

	_, err = GetCollection(favoritesName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "propertyId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("Failed to create favorites index: %v", err)
	}

	_, err = GetCollection(propertiesName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "legacyId", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	if err != nil {
		log.Fatalf("Failed to create properties legacyId index: %v", err)
	}
}
