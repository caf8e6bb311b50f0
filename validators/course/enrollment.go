package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetUserEnrollments validates the pagination query for the enrollment list
func GetUserEnrollments() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		// Validate Page
		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		// Validate Limit
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}

// GetCourseEnrollments validates the admin enrollment listing query
func GetCourseEnrollments() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `json:"page"`
			Limit  *int   `json:"limit"`
			Status string `json:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Status != "" && reqData.Status != "ENROLLED" && reqData.Status != "IN_PROGRESS" && reqData.Status != "COMPLETED" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be ENROLLED, IN_PROGRESS or COMPLETED!",
			})
		}

		c.Locals("validatedEnrollmentQuery", reqData)
		return c.Next()
	}
}
