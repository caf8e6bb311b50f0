package userRoutes

import (
	controllers "lms/controllers/userControllers"
	"lms/middleware"
	validators "lms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user profile routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, controllers.GetProfile)
	userGroup.Patch("/profile", middleware.JWTMiddleware, validators.UpdateProfile(), controllers.UpdateProfile)
	userGroup.Post("/change-password", middleware.JWTMiddleware, controllers.ChangePassword)
	userGroup.Post("/profile-image", middleware.JWTMiddleware, controllers.UploadProfileImage)
}
