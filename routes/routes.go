package routes

import (
	"dwelldash/handlers"
	"dwelldash/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handlers.HealthCheck)

	userController := handlers.NewUserController()
	propertyController := handlers.NewPropertyController()
	favoriteController := handlers.NewFavoriteController()
	chatbotController := handlers.NewChatbotController()

	auth := middleware.JWTMiddleware()
	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", userController.Register)
	authGroup.POST("/login", userController.Login)

	users := api.Group("/users")
	users.GET("", userController.GetAllUsers, auth)
	users.GET("/me", userController.GetProfile, auth)
	users.PUT("/me", userController.UpdateProfile, auth)
	users.DELETE("/me", userController.DeleteAccount, auth)

	properties := api.Group("/properties")
	properties.GET("", propertyController.ListProperties)
	properties.POST("", propertyController.CreateProperty, auth)
	properties.GET("/mine", propertyController.GetMyProperties, auth)
	properties.GET("/:id", propertyController.GetProperty)
	properties.PUT("/:id", propertyController.UpdateProperty, auth)
	properties.PATCH("/:id/availability", propertyController.SetAvailability, auth)
	properties.DELETE("/:id", propertyController.DeleteProperty, auth)

	favorites := api.Group("/favorites")
	favorites.GET("", favoriteController.GetFavorites, auth)
	favorites.GET("/property-ids", favoriteController.GetFavoritePropertyIDs, auth)
	favorites.GET("/check/:propertyId", favoriteController.CheckFavorite, auth)
	favorites.GET("/count/:propertyId", favoriteController.CountFavorites)
	favorites.POST("/:propertyId", favoriteController.AddFavorite, auth)
	favorites.DELETE("/:propertyId", favoriteController.RemoveFavorite, auth)

	api.POST("/chatbot", chatbotController.Chat)
}
