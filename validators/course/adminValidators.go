package courseValidator

import (
	"lms/middleware"
	courseModels "lms/models/course"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CreateCourseAdmin validates the course-creation payload
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		} else if len(strings.TrimSpace(reqData.Description)) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		// Validate Type
		if reqData.Type == "" {
			reqData.Type = courseModels.TypeRecorded
		} else if reqData.Type != courseModels.TypeRecorded && reqData.Type != courseModels.TypeLive {
			errors["type"] = "Type must be either recorded or live!"
		}

		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}
		if reqData.LessonCount < 0 {
			errors["lesson_count"] = "Lesson count cannot be negative!"
		}
		if reqData.BackgroundColorHex != "" && !hexColorRe.MatchString(reqData.BackgroundColorHex) {
			errors["background_color_hex"] = "Background color must be a #RRGGBB hex value!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates the course-update payload
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := parsePositiveInt(courseIDStr)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", courseID)

		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Status != "" && reqData.Status != "DRAFT" && reqData.Status != "ACTIVE" && reqData.Status != "INACTIVE" {
			errors["status"] = "Status must be DRAFT, ACTIVE or INACTIVE!"
		}
		if reqData.Duration != nil && *reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}
		if reqData.LessonCount != nil && *reqData.LessonCount < 0 {
			errors["lesson_count"] = "Lesson count cannot be negative!"
		}
		if reqData.BackgroundColorHex != "" && !hexColorRe.MatchString(reqData.BackgroundColorHex) {
			errors["background_color_hex"] = "Background color must be a #RRGGBB hex value!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
