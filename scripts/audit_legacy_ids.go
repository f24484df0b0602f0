// One-off migration check: lists legacyId values shared by more than one
// property. The unique sparse index refuses new duplicates, but data
// migrated before the index existed has to be audited by hand.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"dwelldash/config"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	godotenv.Load()
	config.ConnectDB()

	collectionName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if collectionName == "" {
		collectionName = "properties"
	}
	collection := config.GetCollection(collectionName)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"legacyId": bson.M{"$exists": true, "$ne": ""}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$legacyId",
			"count": bson.M{"$sum": 1},
			"ids":   bson.M{"$push": "$_id"},
		}}},
		{{Key: "$match", Value: bson.M{"count": bson.M{"$gt": 1}}}},
	}

	cursor, err := collection.Aggregate(context.Background(), pipeline)
	if err != nil {
		log.Fatalf("Aggregation failed: %v", err)
	}
	defer cursor.Close(context.Background())

	duplicates := 0
	for cursor.Next(context.Background()) {
		var result struct {
			LegacyID string               `bson:"_id"`
			Count    int32                `bson:"count"`
			IDs      []primitive.ObjectID `bson:"ids"`
		}
		if err := cursor.Decode(&result); err != nil {
			log.Fatalf("Decode failed: %v", err)
		}
		duplicates++
		fmt.Printf("legacyId %s is carried by %d properties:\n", result.LegacyID, result.Count)
		for _, id := range result.IDs {
			fmt.Printf("  %s\n", id.Hex())
		}
	}

	if duplicates == 0 {
		fmt.Println("No duplicate legacy ids found")
		return
	}
	fmt.Printf("%d duplicate legacy ids need manual cleanup\n", duplicates)
	os.Exit(1)
}
