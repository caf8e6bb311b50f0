package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up instructor and admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin/courses")

	adminGroup.Get("/", middleware.JWTMiddleware, validators.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Post("/", middleware.JWTMiddleware, validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Patch("/:id", middleware.JWTMiddleware, validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, validators.CourseID(), controllers.AdminPublishCourse)
	adminGroup.Post("/:id/convert-to-recorded", middleware.JWTMiddleware, validators.CourseID(), controllers.AdminConvertToRecorded)
	adminGroup.Post("/:id/thumbnail", middleware.JWTMiddleware, validators.CourseID(), controllers.AdminUploadThumbnail)
	adminGroup.Get("/:id/enrollments", middleware.JWTMiddleware, validators.CourseID(), validators.GetCourseEnrollments(), controllers.AdminGetCourseEnrollments)

	app.Get("/api/admin/dashboard", middleware.JWTMiddleware, controllers.AdminDashboardStats)
}
