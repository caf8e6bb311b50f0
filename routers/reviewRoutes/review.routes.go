package reviewRoutes

import (
	controllers "lms/controllers/review"
	"lms/middleware"
	validators "lms/validators/review"

	"github.com/gofiber/fiber/v2"
)

// SetupReviewRoutes sets up course review routes
func SetupReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/api/courses/:id/reviews")

	reviewGroup.Get("/", validators.CourseID(), controllers.GetCourseReviews)
	reviewGroup.Post("/", middleware.JWTMiddleware, validators.SubmitReview(), controllers.SubmitReview)
	reviewGroup.Delete("/", middleware.JWTMiddleware, validators.CourseID(), controllers.DeleteReview)
}
