package reviewController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitReview allows a user to review a course they are enrolled in
func SubmitReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedReview").(*struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if course exists
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Must be enrolled to review
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	// One review per user per course
	var existingReview models.Review
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", courseID, userId, false).First(&existingReview).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := models.Review{
		UserID:   userId,
		CourseID: uint(courseID),
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		log.Printf("Error saving review: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	if err := recomputeCourseRating(db, uint(courseID)); err != nil {
		log.Printf("Error recomputing rating for course %d: %v", courseID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review submitted successfully!", review)
}

// GetCourseReviews returns reviews of a course, paginated
func GetCourseReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Model(&models.Review{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&total)

	var reviews []models.Review
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	// Attach reviewer names in one query
	userIDs := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		userIDs = append(userIDs, r.UserID)
	}
	nameByID := make(map[uint]string, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		db.Where("id IN ?", userIDs).Find(&users)
		for _, u := range users {
			nameByID[u.ID] = u.Name
		}
	}

	type ReviewWithUser struct {
		models.Review
		UserName string `json:"user_name"`
	}
	result := make([]ReviewWithUser, len(reviews))
	for i, r := range reviews {
		result[i] = ReviewWithUser{Review: r, UserName: nameByID[r.UserID]}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// DeleteReview removes the caller's own review and refreshes the course rating
func DeleteReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var review models.Review
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", courseID, userId, false).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if err := db.Model(&review).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	if err := recomputeCourseRating(db, uint(courseID)); err != nil {
		log.Printf("Error recomputing rating for course %d: %v", courseID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}

// recomputeCourseRating refreshes a course's rating aggregate from its reviews
func recomputeCourseRating(db *gorm.DB, courseID uint) error {
	var count int64
	var avg float64

	db.Model(&models.Review{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&count)
	if count > 0 {
		row := db.Model(&models.Review{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("AVG(rating)").Row()
		if err := row.Scan(&avg); err != nil {
			return err
		}
	}

	return db.Model(&courseModels.Course{}).Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"rating_average": avg,
			"rating_count":   count,
		}).Error
}
