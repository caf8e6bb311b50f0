package schedulerController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	schedulerModels "lms/models/scheduler"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMySchedule returns the learner's full schedule: every scheduled course
// with its items and display metadata
func GetMySchedule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	db := database.Database.Db

	var enrollment schedulerModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&enrollment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.DataResponse(c, fiber.Map{
				"scheduledCourses": []schedulerModels.ScheduledCourse{},
			})
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch schedule")
	}

	var scheduledCourses []schedulerModels.ScheduledCourse
	if err := db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).
		Preload("Items").
		Find(&scheduledCourses).Error; err != nil {
		log.Printf("Error loading schedule for user %d: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch schedule")
	}

	// Course display metadata, one query for all
	courseIDs := make([]uint, 0, len(scheduledCourses))
	for _, sc := range scheduledCourses {
		courseIDs = append(courseIDs, sc.CourseID)
	}
	var courses []courseModels.Course
	if len(courseIDs) > 0 {
		db.Where("id IN ?", courseIDs).Find(&courses)
	}

	return middleware.DataResponse(c, fiber.Map{
		"scheduledCourses": scheduledCourses,
		"courses":          courses,
	})
}

// GetSettings returns the learner's scheduler settings
func GetSettings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	db := database.Database.Db

	var enrollment schedulerModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&enrollment).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No schedule found")
	}

	var settings schedulerModels.Settings
	if err := db.Where("enrollment_id = ?", enrollment.ID).First(&settings).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No settings found")
	}

	return middleware.DataResponse(c, settings)
}

// UpdateSettings updates the learner's scheduler settings
func UpdateSettings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	reqData, ok := c.Locals("validatedSettings").(*struct {
		DefaultWeekDay      *int  `json:"default_week_day" validate:"omitempty,min=0,max=6"`
		RemindersEnabled    *bool `json:"reminders_enabled"`
		ReminderLeadMinutes *int  `json:"reminder_lead_minutes" validate:"omitempty,min=5,max=1440"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	var enrollment schedulerModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&enrollment).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No schedule found")
	}

	var settings schedulerModels.Settings
	if err := db.Where("enrollment_id = ?", enrollment.ID).First(&settings).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No settings found")
	}

	if reqData.DefaultWeekDay != nil {
		settings.DefaultWeekDay = *reqData.DefaultWeekDay
	}
	if reqData.RemindersEnabled != nil {
		settings.RemindersEnabled = *reqData.RemindersEnabled
	}
	if reqData.ReminderLeadMinutes != nil {
		settings.ReminderLeadMinutes = *reqData.ReminderLeadMinutes
	}

	if err := db.Save(&settings).Error; err != nil {
		log.Printf("Error saving settings for user %d: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update settings")
	}

	return middleware.DataResponse(c, settings)
}
