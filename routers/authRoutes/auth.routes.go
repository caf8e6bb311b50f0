package authRoutes

import (
	controllers "lms/controllers/auth"
	"lms/middleware"
	validators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", controllers.Login)
	authGroup.Post("/send-otp", controllers.SendOTP)
	authGroup.Post("/verify-otp", controllers.VerifyOTP)
	authGroup.Post("/forgot-password", controllers.ForgotPassword)
	authGroup.Post("/reset-password", controllers.ResetPassword)

	authGroup.Get("/login-history", middleware.JWTMiddleware, validators.LoginHistory(), controllers.LoginHistoryList)
}
