package schedulerValidator

import (
	"lms/middleware"
	"lms/utils"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// MarkCompleted validates the mark-completed payload. The itemId must be
// a non-empty string; the scheduler endpoints use the bare error envelope.
func MarkCompleted() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ItemID string `json:"itemId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		itemID := strings.TrimSpace(reqData.ItemID)
		if itemID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "itemId is required")
		}

		c.Locals("validatedItemID", itemID)
		return c.Next()
	}
}

// GenerateWeek parses the optional week_start date. When absent the
// controller falls back to the current day.
func GenerateWeek() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WeekStart string `json:"week_start"`
		})
		if err := c.BodyParser(reqData); err != nil && c.Get("Content-Type") != "" && len(c.Body()) > 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		weekStartStr := strings.TrimSpace(reqData.WeekStart)
		if weekStartStr == "" {
			return c.Next()
		}

		weekStart, err := time.Parse("2006-01-02", weekStartStr)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "week_start must be a YYYY-MM-DD date")
		}

		c.Locals("validatedWeekStart", utils.StartOfDay(weekStart))
		return c.Next()
	}
}

// UpdateSettings validates the scheduler settings payload
func UpdateSettings() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			DefaultWeekDay      *int  `json:"default_week_day" validate:"omitempty,min=0,max=6"`
			RemindersEnabled    *bool `json:"reminders_enabled"`
			ReminderLeadMinutes *int  `json:"reminder_lead_minutes" validate:"omitempty,min=5,max=1440"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := validate.Struct(reqData); err != nil {
			messages := make([]string, 0)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "DefaultWeekDay":
					messages = append(messages, "default_week_day must be between 0 and 6")
				case "ReminderLeadMinutes":
					messages = append(messages, "reminder_lead_minutes must be between 5 and 1440")
				}
			}
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, strings.Join(messages, "; "))
		}

		c.Locals("validatedSettings", reqData)
		return c.Next()
	}
}
