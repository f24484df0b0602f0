package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dwelldash/config"
	"dwelldash/models"
	"dwelldash/store"
	"dwelldash/utils"
)

const listCacheTTL = 60 * time.Second

type PropertyController struct {
	collection *mongo.Collection
	favorites  store.FavoriteStore
	resolver   *store.Resolver
}

func NewPropertyController() *PropertyController {
	propertiesName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if propertiesName == "" {
		propertiesName = "properties"
	}
	favoritesName := os.Getenv("MONGODB_COLLECTION_FAVORITES")
	if favoritesName == "" {
		favoritesName = "favorites"
	}
	usersName := os.Getenv("MONGODB_COLLECTION_USERS")
	if usersName == "" {
		usersName = "users"
	}

	properties := config.GetCollection(propertiesName)

	return &PropertyController{
		collection: properties,
		favorites:  store.NewMongoFavoriteStore(config.GetCollection(favoritesName), properties, config.GetCollection(usersName)),
		resolver:   store.NewResolver(store.NewMongoPropertyFinder(properties)),
	}
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	userRole := c.Get("user_role").(string)
	if userRole != models.RoleOwner && userRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Only owners can list properties"})
	}

	var property models.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property data"})
	}

	property.ID = primitive.NewObjectID()
	property.LegacyID = ""
	property.OwnerID = userID
	property.Views = 0
	property.Available = true
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()

	if _, err := pc.collection.InsertOne(c.Request().Context(), property); err != nil {
		log.Printf("properties: insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create property"})
	}
	return c.JSON(http.StatusCreated, property)
}

// GetProperty accepts both canonical and legacy identifiers and bumps the
// view counter on every successful fetch.
func (pc *PropertyController) GetProperty(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := pc.resolver.Resolve(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidPropertyID):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
		case errors.Is(err, store.ErrPropertyNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		log.Printf("properties: resolve %q failed: %v", c.Param("id"), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var property models.Property
	err = pc.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": propertyID},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		log.Printf("properties: fetch failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	userRole := c.Get("user_role").(string)
	ctx := c.Request().Context()

	propertyID, property, err := pc.resolveAndFetch(c, c.Param("id"))
	if err != nil || property == nil {
		return err
	}
	if property.OwnerID != userID && userRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to update this property"})
	}

	var update models.Property
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	updateDoc := bson.M{
		"title":         update.Title,
		"description":   update.Description,
		"address":       update.Address,
		"city":          update.City,
		"state":         update.State,
		"pincode":       update.Pincode,
		"price":         update.Price,
		"category":      update.Category,
		"bedrooms":      update.Bedrooms,
		"bathrooms":     update.Bathrooms,
		"areaSqFt":      update.AreaSqFt,
		"furnished":     update.Furnished,
		"parking":       update.Parking,
		"petFriendly":   update.PetFriendly,
		"availableFrom": update.AvailableFrom,
		"images":        update.Images,
		"amenities":     update.Amenities,
		"lat":           update.Lat,
		"lng":           update.Lng,
		"featured":      update.Featured,
		"updatedAt":     time.Now(),
	}
	if _, err := pc.collection.UpdateOne(ctx, bson.M{"_id": propertyID}, bson.M{"$set": updateDoc}); err != nil {
		log.Printf("properties: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update property"})
	}

	var updated models.Property
	if err := pc.collection.FindOne(ctx, bson.M{"_id": propertyID}).Decode(&updated); err != nil {
		log.Printf("properties: refetch failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch updated property"})
	}
	return c.JSON(http.StatusOK, updated)
}

// SetAvailability is the soft-disable path: a listing stays in the system
// but drops out of available-only searches.
func (pc *PropertyController) SetAvailability(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	userRole := c.Get("user_role").(string)
	ctx := c.Request().Context()

	propertyID, property, err := pc.resolveAndFetch(c, c.Param("id"))
	if err != nil || property == nil {
		return err
	}
	if property.OwnerID != userID && userRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to update this property"})
	}

	var req models.UpdateAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	updateDoc := bson.M{
		"available": req.Available,
		"updatedAt": time.Now(),
	}
	if req.AvailableFrom != nil {
		updateDoc["availableFrom"] = *req.AvailableFrom
	}
	if _, err := pc.collection.UpdateOne(ctx, bson.M{"_id": propertyID}, bson.M{"$set": updateDoc}); err != nil {
		log.Printf("properties: availability update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update availability"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Availability updated successfully"})
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	userRole := c.Get("user_role").(string)
	ctx := c.Request().Context()

	propertyID, property, err := pc.resolveAndFetch(c, c.Param("id"))
	if err != nil || property == nil {
		return err
	}
	if property.OwnerID != userID && userRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to delete this property"})
	}

	if _, err := pc.collection.DeleteOne(ctx, bson.M{"_id": propertyID}); err != nil {
		log.Printf("properties: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete property"})
	}
	if err := pc.favorites.RemoveAllForProperty(ctx, propertyID); err != nil {
		log.Printf("properties: favorite cleanup failed: %v", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

func (pc *PropertyController) GetMyProperties(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	ctx := c.Request().Context()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := pc.collection.Find(ctx, bson.M{"ownerId": userID}, opts)
	if err != nil {
		log.Printf("properties: list mine failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()
	query := bson.M{}
	cacheParams := map[string]string{}

	param := func(name string) string {
		v := c.QueryParam(name)
		if v != "" {
			cacheParams[name] = v
		}
		return v
	}

	if title := param("title"); title != "" {
		query["title"] = bson.M{"$regex": title, "$options": "i"}
	}
	if city := param("city"); city != "" {
		query["city"] = bson.M{"$regex": "^" + city + "$", "$options": "i"}
	}
	if state := param("state"); state != "" {
		query["state"] = state
	}
	if category := param("category"); category != "" {
		query["category"] = category
	}
	if priceMin := param("price_min"); priceMin != "" {
		if min, err := strconv.ParseFloat(priceMin, 64); err == nil {
			query["price"] = bson.M{"$gte": min}
		}
	}
	if priceMax := param("price_max"); priceMax != "" {
		if max, err := strconv.ParseFloat(priceMax, 64); err == nil {
			if existing, ok := query["price"].(bson.M); ok {
				existing["$lte"] = max
			} else {
				query["price"] = bson.M{"$lte": max}
			}
		}
	}
	if areaMin := param("area_min"); areaMin != "" {
		if min, err := strconv.ParseFloat(areaMin, 64); err == nil {
			query["areaSqFt"] = bson.M{"$gte": min}
		}
	}
	if areaMax := param("area_max"); areaMax != "" {
		if max, err := strconv.ParseFloat(areaMax, 64); err == nil {
			if existing, ok := query["areaSqFt"].(bson.M); ok {
				existing["$lte"] = max
			} else {
				query["areaSqFt"] = bson.M{"$lte": max}
			}
		}
	}
	if bedrooms := param("bedrooms"); bedrooms != "" {
		if num, err := strconv.Atoi(bedrooms); err == nil {
			query["bedrooms"] = num
		}
	}
	for _, flag := range []string{"furnished", "parking", "pet_friendly", "featured", "available"} {
		value := param(flag)
		if value != "true" && value != "false" {
			continue
		}
		field := flag
		if flag == "pet_friendly" {
			field = "petFriendly"
		}
		query[field] = value == "true"
	}
	if amenity := param("amenity"); amenity != "" {
		query["amenities"] = amenity
	}

	page := 1
	limit := 10
	if p := param("page"); p != "" {
		if num, err := strconv.Atoi(p); err == nil && num > 0 {
			page = num
		}
	}
	if l := param("limit"); l != "" {
		if num, err := strconv.Atoi(l); err == nil && num > 0 {
			limit = num
		}
	}
	skip := (page - 1) * limit

	cacheKey := utils.GenerateQueryCacheKey("properties", cacheParams)
	var cached []models.Property
	if hit, err := utils.GetCached(ctx, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := pc.collection.Find(ctx, query, opts)
	if err != nil {
		log.Printf("properties: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}

	if err := utils.SetCached(ctx, cacheKey, properties, listCacheTTL); err != nil {
		log.Printf("properties: cache set failed: %v", err)
	}
	return c.JSON(http.StatusOK, properties)
}

// resolveAndFetch maps the raw id and loads the property, writing the
// error response itself. A nil property with a nil error means the
// response has already been sent.
func (pc *PropertyController) resolveAndFetch(c echo.Context, raw string) (primitive.ObjectID, *models.Property, error) {
	ctx := c.Request().Context()

	propertyID, err := pc.resolver.Resolve(ctx, raw)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidPropertyID):
			return primitive.NilObjectID, nil, c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
		case errors.Is(err, store.ErrPropertyNotFound):
			return primitive.NilObjectID, nil, c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		log.Printf("properties: resolve %q failed: %v", raw, err)
		return primitive.NilObjectID, nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	var property models.Property
	if err := pc.collection.FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property); err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, nil, c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		log.Printf("properties: fetch failed: %v", err)
		return primitive.NilObjectID, nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	return propertyID, &property, nil
}
