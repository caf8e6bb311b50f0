package schedulerRoutes

import (
	controllers "lms/controllers/scheduler"
	"lms/middleware"
	validators "lms/validators/scheduler"

	"github.com/gofiber/fiber/v2"
)

// SetupSchedulerRoutes sets up the learning scheduler routes
func SetupSchedulerRoutes(app *fiber.App) {
	learningGroup := app.Group("/api/learning")
	learningGroup.Post("/mark-completed", middleware.JWTMiddleware, validators.MarkCompleted(), controllers.MarkItemCompleted)

	schedulerGroup := app.Group("/api/scheduler")
	schedulerGroup.Get("/week-preview", middleware.JWTMiddleware, controllers.WeekPreview)
	schedulerGroup.Post("/generate-week", middleware.JWTMiddleware, validators.GenerateWeek(), controllers.GenerateWeek)
	schedulerGroup.Get("/schedule", middleware.JWTMiddleware, controllers.GetMySchedule)
	schedulerGroup.Get("/settings", middleware.JWTMiddleware, controllers.GetSettings)
	schedulerGroup.Patch("/settings", middleware.JWTMiddleware, validators.UpdateSettings(), controllers.UpdateSettings)
}
