package favoriteController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AddFavorite marks a course as a favorite for the caller
func AddFavorite(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing models.Favorite
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already in favorites!", nil)
	}

	favorite := models.Favorite{
		UserID:   userId,
		CourseID: uint(courseID),
	}

	if err := db.Create(&favorite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add favorite!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course added to favorites!", favorite)
}

// RemoveFavorite removes a course from the caller's favorites
func RemoveFavorite(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var favorite models.Favorite
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseID, false).First(&favorite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Favorite not found!", nil)
	}

	if err := db.Model(&favorite).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove favorite!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from favorites!", nil)
}

// GetFavorites lists the caller's favorite courses
func GetFavorites(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var favorites []models.Favorite
	if err := db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("created_at desc").Find(&favorites).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch favorites!", nil)
	}

	// Join course display info in one query
	courseIDs := make([]uint, 0, len(favorites))
	for _, f := range favorites {
		courseIDs = append(courseIDs, f.CourseID)
	}

	var courses []courseModels.Course
	if len(courseIDs) > 0 {
		db.Where("id IN ? AND is_deleted = ?", courseIDs, false).Find(&courses)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Favorites fetched successfully!", fiber.Map{
		"favorites": favorites,
		"courses":   courses,
	})
}
