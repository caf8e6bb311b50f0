package adminRoutes

import (
	controllers "lms/controllers/admin"
	"lms/middleware"
	validators "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up platform administration routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin/users", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-users"))

	adminGroup.Get("/", validators.UserList(), controllers.UserList)
	adminGroup.Post("/:id/block", validators.TargetUserID(), controllers.BlockUser)
	adminGroup.Post("/:id/unblock", validators.TargetUserID(), controllers.UnblockUser)

	app.Post("/api/admin/instructors", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-users"), controllers.RegisterInstructor)
}
