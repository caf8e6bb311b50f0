package favoriteRoutes

import (
	controllers "lms/controllers/favorite"
	"lms/middleware"
	validators "lms/validators/favorite"

	"github.com/gofiber/fiber/v2"
)

// SetupFavoriteRoutes sets up favorite course routes
func SetupFavoriteRoutes(app *fiber.App) {
	favoriteGroup := app.Group("/api/favorites")

	favoriteGroup.Get("/", middleware.JWTMiddleware, controllers.GetFavorites)
	favoriteGroup.Post("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.AddFavorite)
	favoriteGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.RemoveFavorite)
}
