package adminValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserList validates pagination for the admin user listing
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		// Parse query parameters
		pageStr := c.Query("page", "1")
		limitStr := c.Query("limit", "10")

		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid page number!", nil)
		}

		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid limit! Must be between 1 and 100.", nil)
		}

		reqData.Page = &page
		reqData.Limit = &limit

		c.Locals("validateUserList", reqData)
		return c.Next()
	}
}

// TargetUserID validates the :id route param for user management routes
func TargetUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("id"))
		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", userID)
		return c.Next()
	}
}
