package sessionRoutes

import (
	controllers "lms/controllers/session"
	"lms/middleware"
	validators "lms/validators/session"

	"github.com/gofiber/fiber/v2"
)

// SetupSessionRoutes sets up live session routes
func SetupSessionRoutes(app *fiber.App) {
	sessionGroup := app.Group("/api/courses/:id/sessions")

	sessionGroup.Get("/", middleware.JWTMiddleware, validators.CourseID(), controllers.GetUpcomingSessions)
	sessionGroup.Post("/", middleware.JWTMiddleware, validators.ScheduleSession(), controllers.ScheduleSession)
	sessionGroup.Delete("/:sessionId", middleware.JWTMiddleware, validators.SessionID(), controllers.CancelSession)
}
