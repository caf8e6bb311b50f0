package controllers

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// requireInstructor loads the caller and rejects anyone who is neither an
// instructor nor an admin. Returns nil user on failure (response already sent).
func requireInstructor(c *fiber.Ctx) (*models.User, error) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "INSTRUCTOR" && user.Role != "ADMIN" {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	return &user, nil
}

// AdminCreateCourse creates a new draft course
func AdminCreateCourse(c *fiber.Ctx) error {
	user, err := requireInstructor(c)
	if user == nil {
		return err
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title              string   `json:"title"`
		Description        string   `json:"description"`
		Category           string   `json:"category"`
		Type               string   `json:"type"`
		Duration           int64    `json:"duration"`
		LessonCount        int      `json:"lesson_count"`
		BackgroundColorHex string   `json:"background_color_hex"`
		IconURL            string   `json:"icon_url"`
		Tags               []string `json:"tags"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		InstructorID: user.ID,
		Category:     reqData.Category,
		Type:         reqData.Type,
		Duration:     reqData.Duration,
		LessonCount:  reqData.LessonCount,
	}
	if reqData.BackgroundColorHex != "" {
		course.BackgroundColorHex = reqData.BackgroundColorHex
	}
	if reqData.IconURL != "" {
		course.IconURL = reqData.IconURL
	}
	if len(reqData.Tags) > 0 {
		raw, err := json.Marshal(reqData.Tags)
		if err == nil {
			course.Tags = datatypes.JSON(raw)
		}
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course's fields
func AdminUpdateCourse(c *fiber.Ctx) error {
	user, err := requireInstructor(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if user.Role != "ADMIN" && course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own courses!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title              string   `json:"title"`
		Description        string   `json:"description"`
		Category           string   `json:"category"`
		Duration           *int64   `json:"duration"`
		LessonCount        *int     `json:"lesson_count"`
		Status             string   `json:"status"`
		BackgroundColorHex string   `json:"background_color_hex"`
		IconURL            string   `json:"icon_url"`
		Tags               []string `json:"tags"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.LessonCount != nil {
		course.LessonCount = *reqData.LessonCount
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}
	if reqData.BackgroundColorHex != "" {
		course.BackgroundColorHex = reqData.BackgroundColorHex
	}
	if reqData.IconURL != "" {
		course.IconURL = reqData.IconURL
	}
	if len(reqData.Tags) > 0 {
		raw, err := json.Marshal(reqData.Tags)
		if err == nil {
			course.Tags = datatypes.JSON(raw)
		}
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft-deletes a course
func AdminDeleteCourse(c *fiber.Ctx) error {
	user, err := requireInstructor(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if user.Role != "ADMIN" && course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own courses!", nil)
	}

	if err := database.Database.Db.Model(&course).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminPublishCourse marks a course active and published
func AdminPublishCourse(c *fiber.Ctx) error {
	user, err := requireInstructor(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if user.Role != "ADMIN" && course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own courses!", nil)
	}

	course.IsPublished = true
	course.Status = "ACTIVE"
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// AdminConvertToRecorded converts a finished live course into a recorded one.
// All its sessions must have ended or been cancelled.
func AdminConvertToRecorded(c *fiber.Ctx) error {
	user, err := requireInstructor(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if user.Role != "ADMIN" && course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own courses!", nil)
	}

	if course.Type != courseModels.TypeLive {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only live courses can be converted!", nil)
	}

	var pending int64
	database.Database.Db.Model(&courseModels.LiveSession{}).
		Where("course_id = ? AND is_deleted = ? AND status IN ?", courseID, false,
			[]string{courseModels.SessionScheduled, courseModels.SessionLive}).
		Count(&pending)
	if pending > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course still has upcoming or running sessions!", nil)
	}

	course.Type = courseModels.TypeRecorded
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to convert course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course converted to recorded!", course)
}

// AdminUploadThumbnail stores a thumbnail image for a course
func AdminUploadThumbnail(c *fiber.Ctx) error {
	user, err := requireInstructor(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if user.Role != "ADMIN" && course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own courses!", nil)
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "./public/uploads/thumbnails")
	if err != nil {
		log.Printf("Error saving thumbnail: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
	}

	course.ThumbnailURL = path
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail uploaded!", fiber.Map{"thumbnail_url": path})
}

// AdminGetAllCourses lists all courses (including drafts) for management
func AdminGetAllCourses(c *fiber.Ctx) error {
	user, err := requireInstructor(c)
	if user == nil {
		return err
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page     *int   `json:"page"`
		Limit    *int   `json:"limit"`
		Search   string `json:"search"`
		Category string `json:"category"`
		Type     string `json:"type"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	// Instructors only see their own courses
	if user.Role != "ADMIN" {
		db = db.Where("instructor_id = ?", user.ID)
	}
	if reqData.Search != "" {
		db = db.Where("title LIKE ?", "%"+reqData.Search+"%")
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
