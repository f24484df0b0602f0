package handlers

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"dwelldash/config"
	"dwelldash/models"
	"dwelldash/utils"
)

type UserController struct {
	collection *mongo.Collection
	properties *mongo.Collection
}

func NewUserController() *UserController {
	usersName := os.Getenv("MONGODB_COLLECTION_USERS")
	if usersName == "" {
		usersName = "users"
	}
	propertiesName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if propertiesName == "" {
		propertiesName = "properties"
	}
	return &UserController{
		collection: config.GetCollection(usersName),
		properties: config.GetCollection(propertiesName),
	}
}

func (uc *UserController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid registration data"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	ctx := c.Request().Context()

	var existingUser models.User
	err := uc.collection.FindOne(ctx, bson.M{"email": email}).Decode(&existingUser)
	if err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "User with this email already exists"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("users: password hash failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
	}

	role := req.Role
	if role == "" {
		role = models.RoleTenant
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  hashedPassword,
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := uc.collection.InsertOne(ctx, user); err != nil {
		// the unique email index catches a concurrent registration
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "User with this email already exists"})
		}
		log.Printf("users: insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("users: token generation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	user.Password = ""
	return c.JSON(http.StatusCreated, models.LoginResponse{Token: token, User: user})
}

func (uc *UserController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and password are required"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := uc.collection.FindOne(c.Request().Context(), bson.M{"email": email}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("users: token generation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}

func (uc *UserController) GetProfile(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var user models.User
	err := uc.collection.FindOne(c.Request().Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateProfile(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	ctx := c.Request().Context()

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	updateDoc := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		updateDoc["name"] = req.Name
	}
	if req.Phone != "" {
		updateDoc["phone"] = req.Phone
	}
	if req.Address != "" {
		updateDoc["address"] = req.Address
	}
	if req.Bio != "" {
		updateDoc["bio"] = req.Bio
	}

	if _, err := uc.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": updateDoc}); err != nil {
		log.Printf("users: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update user"})
	}

	var user models.User
	if err := uc.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		log.Printf("users: refetch failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch updated user"})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, user)
}

// DeleteAccount refuses to delete an account that still owns available
// listings; the owner has to take them down first.
func (uc *UserController) DeleteAccount(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	ctx := c.Request().Context()

	active, err := uc.properties.CountDocuments(ctx, bson.M{"ownerId": userID, "available": true})
	if err != nil {
		log.Printf("users: active property count failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete user"})
	}
	if active > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cannot delete account while you have active property listings"})
	}

	if _, err := uc.collection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		log.Printf("users: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete user"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

func (uc *UserController) GetAllUsers(c echo.Context) error {
	userRole := c.Get("user_role").(string)
	if userRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
	}

	ctx := c.Request().Context()
	cursor, err := uc.collection.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("users: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch users"})
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		user.Password = ""
		users = append(users, user)
	}
	return c.JSON(http.StatusOK, users)
}
