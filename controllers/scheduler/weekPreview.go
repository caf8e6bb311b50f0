package schedulerController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	schedulerModels "lms/models/scheduler"
	"lms/utils"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// weekDatePayload describes the computed target day
type weekDatePayload struct {
	Date          string `json:"date"`
	FormattedDate string `json:"formattedDate"`
	WeekNumber    int    `json:"weekNumber"`
}

// courseInfoPayload is the display metadata joined onto each preview item
type courseInfoPayload struct {
	ID                 uint   `json:"_id"`
	Title              string `json:"title"`
	BackgroundColorHex string `json:"backgroundColorHex"`
	IconURL            string `json:"iconUrl"`
}

// previewItemPayload is one scheduled item landing on the target day
type previewItemPayload struct {
	ID           uint              `json:"_id"`
	ItemID       string            `json:"itemId"`
	Title        string            `json:"title"`
	ModuleTitle  string            `json:"moduleTitle"`
	SlotID       string            `json:"slotId"`
	Type         string            `json:"type"`
	LessonNumber int               `json:"lessonNumber"`
	TotalLessons int               `json:"totalLessons"`
	IsCompleted  bool              `json:"isCompleted"`
	CourseInfo   courseInfoPayload `json:"courseInfo"`
}

// WeekPreview handles GET /api/scheduler/week-preview: all of the learner's
// scheduled items landing on the next target weekday, ordered by slot.
func WeekPreview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	target := nextTargetDay(
		time.Now(),
		time.Weekday(config.AppConfig.SchedulerTargetWeekday),
		config.AppConfig.SchedulerIncludeToday,
	)
	weekDate := weekDatePayload{
		Date:          target.Format(time.RFC3339),
		FormattedDate: formatWeekDate(target),
		WeekNumber:    weekNumber(target),
	}

	db := database.Database.Db

	var enrollment schedulerModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&enrollment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// No schedule yet is a valid empty state, not an error
			return middleware.DataResponse(c, fiber.Map{
				"weekDate": weekDate,
				"courses":  []previewItemPayload{},
			})
		}
		log.Printf("Error loading scheduler enrollment for user %d: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute week preview")
	}

	items, err := previewItems(db, enrollment.ID, target)
	if err != nil {
		log.Printf("Error computing week preview for user %d: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute week preview")
	}

	return middleware.DataResponse(c, fiber.Map{
		"weekDate": weekDate,
		"courses":  items,
	})
}

// previewItems collects the enrollment's items inside the target day's
// inclusive [startOfDay, endOfDay] window, joins course display metadata in
// memory and orders by the slot's numeric suffix.
func previewItems(db *gorm.DB, enrollmentID uint, target time.Time) ([]previewItemPayload, error) {
	var scheduledCourses []schedulerModels.ScheduledCourse
	if err := db.Where("enrollment_id = ? AND is_deleted = ?", enrollmentID, false).
		Find(&scheduledCourses).Error; err != nil {
		return nil, err
	}

	courseBySchedID := make(map[uint]uint, len(scheduledCourses))
	courseIDs := make([]uint, 0, len(scheduledCourses))
	schedIDs := make([]uint, 0, len(scheduledCourses))
	for _, sc := range scheduledCourses {
		courseBySchedID[sc.ID] = sc.CourseID
		courseIDs = append(courseIDs, sc.CourseID)
		schedIDs = append(schedIDs, sc.ID)
	}

	items := []previewItemPayload{}
	if len(schedIDs) == 0 {
		return items, nil
	}

	var scheduledItems []schedulerModels.ScheduledItem
	if err := db.Where("scheduled_course_id IN ?", schedIDs).
		Where("date >= ? AND date <= ?", utils.StartOfDay(target), utils.EndOfDay(target)).
		Find(&scheduledItems).Error; err != nil {
		return nil, err
	}

	// One metadata query for all referenced courses
	courseByID := make(map[uint]courseModels.Course, len(courseIDs))
	var courses []courseModels.Course
	if err := db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return nil, err
	}
	for _, co := range courses {
		courseByID[co.ID] = co
	}

	for _, item := range scheduledItems {
		co := courseByID[courseBySchedID[item.ScheduledCourseID]]
		items = append(items, previewItemPayload{
			ID:           item.ID,
			ItemID:       item.ItemID,
			Title:        item.Title,
			ModuleTitle:  item.ModuleTitle,
			SlotID:       item.SlotID,
			Type:         item.Type,
			LessonNumber: item.LessonNumber,
			TotalLessons: item.TotalLessons,
			IsCompleted:  item.IsCompleted,
			CourseInfo: courseInfoPayload{
				ID:                 co.ID,
				Title:              co.Title,
				BackgroundColorHex: co.BackgroundColorHex,
				IconURL:            co.IconURL,
			},
		})
	}

	// slot_2 sorts before slot_10 despite the lexical order
	sort.SliceStable(items, func(i, j int) bool {
		return schedulerModels.SlotNumber(items[i].SlotID) < schedulerModels.SlotNumber(items[j].SlotID)
	})

	return items, nil
}
