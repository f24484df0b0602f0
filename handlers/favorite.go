package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dwelldash/config"
	"dwelldash/store"
	"dwelldash/utils"
)

const countCacheTTL = 30 * time.Second

type FavoriteController struct {
	store    store.FavoriteStore
	resolver *store.Resolver
}

func NewFavoriteController() *FavoriteController {
	favoritesName := os.Getenv("MONGODB_COLLECTION_FAVORITES")
	if favoritesName == "" {
		favoritesName = "favorites"
	}
	propertiesName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if propertiesName == "" {
		propertiesName = "properties"
	}
	usersName := os.Getenv("MONGODB_COLLECTION_USERS")
	if usersName == "" {
		usersName = "users"
	}

	favorites := config.GetCollection(favoritesName)
	properties := config.GetCollection(propertiesName)
	users := config.GetCollection(usersName)

	return &FavoriteController{
		store:    store.NewMongoFavoriteStore(favorites, properties, users),
		resolver: store.NewResolver(store.NewMongoPropertyFinder(properties)),
	}
}

// NewFavoriteControllerWith wires explicit dependencies; used by tests.
func NewFavoriteControllerWith(s store.FavoriteStore, r *store.Resolver) *FavoriteController {
	return &FavoriteController{store: s, resolver: r}
}

func (fc *FavoriteController) AddFavorite(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	ctx := c.Request().Context()

	propertyID, err := fc.resolver.Resolve(ctx, c.Param("propertyId"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidPropertyID):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
		case errors.Is(err, store.ErrPropertyNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		log.Printf("favorites: resolve %q failed: %v", c.Param("propertyId"), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add favorite"})
	}

	favorite, err := fc.store.Add(ctx, userID, propertyID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrPropertyNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		case errors.Is(err, store.ErrAlreadyFavorited):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Property already in favorites"})
		}
		log.Printf("favorites: add failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add favorite"})
	}

	fc.invalidateCount(c, propertyID)
	return c.JSON(http.StatusCreated, favorite)
}

func (fc *FavoriteController) RemoveFavorite(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	ctx := c.Request().Context()

	propertyID, err := fc.resolver.Resolve(ctx, c.Param("propertyId"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidPropertyID):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
		case errors.Is(err, store.ErrPropertyNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		log.Printf("favorites: resolve %q failed: %v", c.Param("propertyId"), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove favorite"})
	}

	if err := fc.store.Remove(ctx, userID, propertyID); err != nil {
		if errors.Is(err, store.ErrFavoriteNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Favorite not found"})
		}
		log.Printf("favorites: remove failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove favorite"})
	}

	fc.invalidateCount(c, propertyID)
	return c.JSON(http.StatusOK, map[string]string{"message": "Favorite removed successfully"})
}

// CheckFavorite never reports an error for an unresolvable id: "is this
// favorited" is a yes/no question and an id that resolves to nothing is a
// "no".
func (fc *FavoriteController) CheckFavorite(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	ctx := c.Request().Context()

	propertyID, err := fc.resolver.Resolve(ctx, c.Param("propertyId"))
	if err != nil {
		return c.JSON(http.StatusOK, map[string]bool{"isFavorited": false})
	}

	favorited, err := fc.store.Exists(ctx, userID, propertyID)
	if err != nil {
		log.Printf("favorites: check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check favorite"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"isFavorited": favorited})
}

// CountFavorites is public and, like CheckFavorite, treats an unresolvable
// id as zero rather than an error.
func (fc *FavoriteController) CountFavorites(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := fc.resolver.Resolve(ctx, c.Param("propertyId"))
	if err != nil {
		return c.JSON(http.StatusOK, map[string]int64{"count": 0})
	}

	cacheKey := "favorites:count:" + propertyID.Hex()
	var cached int64
	if hit, err := utils.GetCached(ctx, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, map[string]int64{"count": cached})
	}

	count, err := fc.store.Count(ctx, propertyID)
	if err != nil {
		log.Printf("favorites: count failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to count favorites"})
	}

	if err := utils.SetCached(ctx, cacheKey, count, countCacheTTL); err != nil {
		log.Printf("favorites: cache set failed: %v", err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

func (fc *FavoriteController) GetFavorites(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	favorites, err := fc.store.ListByUser(c.Request().Context(), userID)
	if err != nil {
		log.Printf("favorites: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch favorites"})
	}
	return c.JSON(http.StatusOK, favorites)
}

func (fc *FavoriteController) GetFavoritePropertyIDs(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	ids, err := fc.store.PropertyIDsByUser(c.Request().Context(), userID)
	if err != nil {
		log.Printf("favorites: property ids failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch favorite property IDs"})
	}
	return c.JSON(http.StatusOK, ids)
}

func (fc *FavoriteController) invalidateCount(c echo.Context, propertyID primitive.ObjectID) {
	if err := utils.DeleteCached(c.Request().Context(), "favorites:count:"+propertyID.Hex()); err != nil {
		log.Printf("favorites: cache invalidation failed: %v", err)
	}
}
