package main

import (
	"lms/config"
	"lms/database"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	favoriteRoutes "lms/routers/favoriteRoutes"
	reviewRoutes "lms/routers/reviewRoutes"
	schedulerRoutes "lms/routers/schedulerRoutes"
	sessionRoutes "lms/routers/sessionRoutes"
	userProfileRoutes "lms/routers/userRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	userProfileRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	favoriteRoutes.SetupFavoriteRoutes(app)
	sessionRoutes.SetupSessionRoutes(app)
	schedulerRoutes.SetupSchedulerRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Background reminder loop for today's scheduled items
	reminderCron := utils.InitializeReminderScheduler()
	defer reminderCron.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
