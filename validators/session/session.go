package sessionValidator

import (
	"lms/middleware"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseID validates the :id route param
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// SessionID validates the :sessionId route param
func SessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionIDStr := strings.TrimSpace(c.Params("sessionId"))
		sessionID, err := strconv.Atoi(sessionIDStr)
		if err != nil || sessionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Session ID!", nil)
		}

		c.Locals("sessionID", sessionID)
		return c.Next()
	}
}

// ScheduleSession validates the session creation payload
func ScheduleSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", courseID)

		type sessionPayload struct {
			Topic     string    `json:"topic" validate:"required,min=3,max=200"`
			StartTime time.Time `json:"start_time" validate:"required"`
			EndTime   time.Time `json:"end_time" validate:"required"`
		}

		payload := new(sessionPayload)
		if err := c.BodyParser(payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(payload); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Topic":
					errors["topic"] = "Topic must be between 3 and 200 characters!"
				case "StartTime":
					errors["start_time"] = "Start time is required!"
				case "EndTime":
					errors["end_time"] = "End time is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		errors := make(map[string]string)
		if !payload.EndTime.After(payload.StartTime) {
			errors["end_time"] = "End time must be after start time!"
		}
		if payload.StartTime.Before(time.Now()) {
			errors["start_time"] = "Start time must be in the future!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			Topic     string    `json:"topic"`
			StartTime time.Time `json:"start_time"`
			EndTime   time.Time `json:"end_time"`
		}{
			Topic:     payload.Topic,
			StartTime: payload.StartTime,
			EndTime:   payload.EndTime,
		}

		c.Locals("validatedSession", reqData)
		return c.Next()
	}
}
