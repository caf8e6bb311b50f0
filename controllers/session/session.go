package sessionController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ScheduleSession creates a live session for a live course and provisions a
// meeting room for it
func ScheduleSession(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "INSTRUCTOR" && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
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
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Sessions can only be scheduled on live courses!", nil)
	}

	reqData, ok := c.Locals("validatedSession").(*struct {
		Topic     string    `json:"topic"`
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Next sequence number for the course
	var lastSession courseModels.LiveSession
	sequence := 1
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("sequence_number desc").First(&lastSession).Error; err == nil {
		sequence = lastSession.SequenceNumber + 1
	}

	duration := int(reqData.EndTime.Sub(reqData.StartTime).Minutes())
	meetingURL, err := utils.CreateMeetingRoom(reqData.Topic, reqData.StartTime, duration)
	if err != nil {
		log.Printf("Error provisioning meeting room: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to provision meeting room!", nil)
	}

	session := courseModels.LiveSession{
		CourseID:       uint(courseID),
		Topic:          reqData.Topic,
		SequenceNumber: sequence,
		StartTime:      reqData.StartTime,
		EndTime:        reqData.EndTime,
		MeetingURL:     meetingURL,
		Status:         courseModels.SessionScheduled,
	}

	if err := database.Database.Db.Create(&session).Error; err != nil {
		log.Printf("Error saving session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session scheduled successfully!", session)
}

// GetUpcomingSessions lists a course's upcoming sessions
func GetUpcomingSessions(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var sessions []courseModels.LiveSession
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ? AND status = ? AND start_time >= ?",
			courseID, false, courseModels.SessionScheduled, time.Now()).
		Order("start_time asc").
		Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", fiber.Map{
		"sessions": sessions,
	})
}

// CancelSession cancels a scheduled session and releases its meeting room
func CancelSession(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "INSTRUCTOR" && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	sessionID := c.Locals("sessionID").(int)

	var session courseModels.LiveSession
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", session.CourseID).First(&course).Error; err == nil {
		if user.Role != "ADMIN" && course.InstructorID != user.ID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own courses!", nil)
		}
	}

	if session.Status != courseModels.SessionScheduled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only scheduled sessions can be cancelled!", nil)
	}

	session.Status = courseModels.SessionCancelled
	if err := database.Database.Db.Save(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel session!", nil)
	}

	go utils.CancelMeetingRoom(session.MeetingURL)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session cancelled successfully!", session)
}
