package schedulerController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	schedulerModels "lms/models/scheduler"
	"lms/utils"
	schedulerValidator "lms/validators/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{
		JWTKey:                 "test-secret",
		SchedulerTargetWeekday: int(time.Now().Weekday()),
		SchedulerIncludeToday:  true,
		ReminderLeadMinutes:    30,
	}

	return db
}

func setupTestApp() *fiber.App {
	app := fiber.New()

	app.Post("/api/learning/mark-completed", middleware.JWTMiddleware, schedulerValidator.MarkCompleted(), MarkItemCompleted)
	app.Get("/api/scheduler/week-preview", middleware.JWTMiddleware, WeekPreview)

	return app
}

func createTestUser(t *testing.T, db *gorm.DB) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     "Test Learner",
		Email:    fmt.Sprintf("learner-%s@example.com", uuid.NewString()[:8]),
		Password: "hashed",
		Role:     "USER",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

// seedSchedule creates an enrollment with one scheduled course holding the
// given items, all dated today.
func seedSchedule(t *testing.T, db *gorm.DB, userID uint, items []schedulerModels.ScheduledItem) (schedulerModels.Enrollment, schedulerModels.ScheduledCourse) {
	t.Helper()

	course := courseModels.Course{
		Title:              "Spanish for Beginners",
		Type:               courseModels.TypeRecorded,
		LessonCount:        20,
		BackgroundColorHex: "#2D5BFF",
		IconURL:            "/icons/spanish.png",
		IsPublished:        true,
	}
	require.NoError(t, db.Create(&course).Error)

	enrollment := schedulerModels.Enrollment{UserID: userID}
	require.NoError(t, db.Create(&enrollment).Error)

	scheduled := schedulerModels.ScheduledCourse{
		EnrollmentID: enrollment.ID,
		CourseID:     course.ID,
		StartDate:    utils.StartOfDay(time.Now()),
		Status:       schedulerModels.StatusActive,
		TotalCount:   len(items),
	}
	require.NoError(t, db.Create(&scheduled).Error)

	for i := range items {
		items[i].ScheduledCourseID = scheduled.ID
		if items[i].ItemID == "" {
			items[i].ItemID = uuid.NewString()
		}
		if items[i].Date.IsZero() {
			items[i].Date = utils.StartOfDay(time.Now())
		}
		require.NoError(t, db.Create(&items[i]).Error)
	}

	return enrollment, scheduled
}

func markCompleted(t *testing.T, app *fiber.App, token, itemID string) (int, map[string]interface{}) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"itemId": itemID})
	req := httptest.NewRequest("POST", "/api/learning/mark-completed", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func TestMarkItemCompleted(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	user, token := createTestUser(t, db)

	items := []schedulerModels.ScheduledItem{
		{Title: "Lesson 1", SlotID: schedulerModels.Slot1, LessonNumber: 1, TotalLessons: 3, Type: schedulerModels.ItemRecorded},
		{Title: "Lesson 2", SlotID: schedulerModels.Slot2, LessonNumber: 2, TotalLessons: 3, Type: schedulerModels.ItemRecorded},
		{Title: "Lesson 3", SlotID: schedulerModels.Slot3, LessonNumber: 3, TotalLessons: 3, Type: schedulerModels.ItemRecorded},
	}
	_, scheduled := seedSchedule(t, db, user.ID, items)

	status, result := markCompleted(t, app, token, items[0].ItemID)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, result["success"])

	progress := result["data"].(map[string]interface{})["courseProgress"].(map[string]interface{})
	assert.Equal(t, float64(1), progress["completed"])
	assert.Equal(t, float64(3), progress["total"])

	// The item row is flagged with a completion timestamp
	var item schedulerModels.ScheduledItem
	require.NoError(t, db.Where("item_id = ?", items[0].ItemID).First(&item).Error)
	assert.True(t, item.IsCompleted)
	assert.NotNil(t, item.CompletedAt)

	// The owning course's counter matches the item rows
	var sc schedulerModels.ScheduledCourse
	require.NoError(t, db.First(&sc, scheduled.ID).Error)
	assert.Equal(t, 1, sc.CompletedCount)
	assert.Equal(t, 3, sc.TotalCount)
}

func TestMarkItemCompletedIdempotent(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	user, token := createTestUser(t, db)

	items := []schedulerModels.ScheduledItem{
		{Title: "Lesson 1", SlotID: schedulerModels.Slot1, Type: schedulerModels.ItemRecorded},
		{Title: "Lesson 2", SlotID: schedulerModels.Slot2, Type: schedulerModels.ItemRecorded},
	}
	_, scheduled := seedSchedule(t, db, user.ID, items)

	status, _ := markCompleted(t, app, token, items[0].ItemID)
	assert.Equal(t, fiber.StatusOK, status)

	// Marking the same item again reports the same progress
	status, result := markCompleted(t, app, token, items[0].ItemID)
	assert.Equal(t, fiber.StatusOK, status)
	progress := result["data"].(map[string]interface{})["courseProgress"].(map[string]interface{})
	assert.Equal(t, float64(1), progress["completed"])
	assert.Equal(t, float64(2), progress["total"])

	var sc schedulerModels.ScheduledCourse
	require.NoError(t, db.First(&sc, scheduled.ID).Error)
	assert.Equal(t, 1, sc.CompletedCount)
}

func TestMarkItemCompletedFinishesCourse(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	user, token := createTestUser(t, db)

	items := []schedulerModels.ScheduledItem{
		{Title: "Lesson 1", SlotID: schedulerModels.Slot1, Type: schedulerModels.ItemRecorded},
		{Title: "Lesson 2", SlotID: schedulerModels.Slot2, Type: schedulerModels.ItemRecorded},
	}
	_, scheduled := seedSchedule(t, db, user.ID, items)

	for _, it := range items {
		status, _ := markCompleted(t, app, token, it.ItemID)
		assert.Equal(t, fiber.StatusOK, status)
	}

	var sc schedulerModels.ScheduledCourse
	require.NoError(t, db.First(&sc, scheduled.ID).Error)
	assert.Equal(t, 2, sc.CompletedCount)
	assert.Equal(t, schedulerModels.StatusCompleted, sc.Status)
}

func TestMarkItemCompletedUnknownItem(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	user, token := createTestUser(t, db)

	seedSchedule(t, db, user.ID, []schedulerModels.ScheduledItem{
		{Title: "Lesson 1", SlotID: schedulerModels.Slot1, Type: schedulerModels.ItemRecorded},
	})

	status, result := markCompleted(t, app, token, uuid.NewString())
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, result["success"])
	assert.NotEmpty(t, result["error"])
}

func TestMarkItemCompletedNoSchedule(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	_, token := createTestUser(t, db)

	status, result := markCompleted(t, app, token, uuid.NewString())
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, result["success"])
}

func TestMarkItemCompletedOtherUsersItem(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()

	owner, _ := createTestUser(t, db)
	items := []schedulerModels.ScheduledItem{
		{Title: "Lesson 1", SlotID: schedulerModels.Slot1, Type: schedulerModels.ItemRecorded},
	}
	seedSchedule(t, db, owner.ID, items)

	intruder, token := createTestUser(t, db)
	seedSchedule(t, db, intruder.ID, []schedulerModels.ScheduledItem{
		{Title: "Other lesson", SlotID: schedulerModels.Slot1, Type: schedulerModels.ItemRecorded},
	})

	// Another learner's item id resolves to not-found, not to their row
	status, _ := markCompleted(t, app, token, items[0].ItemID)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestMarkItemCompletedMissingItemID(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	_, token := createTestUser(t, db)

	req := httptest.NewRequest("POST", "/api/learning/mark-completed", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVersionGuard(t *testing.T) {
	db := setupTestDb(t)
	user, _ := createTestUser(t, db)

	enrollment, _ := seedSchedule(t, db, user.ID, []schedulerModels.ScheduledItem{
		{Title: "Lesson 1", SlotID: schedulerModels.Slot1, Type: schedulerModels.ItemRecorded},
	})

	// A stale version token matches no row
	stale := db.Model(&schedulerModels.Enrollment{}).
		Where("id = ? AND version = ?", enrollment.ID, enrollment.Version+5).
		Update("version", enrollment.Version+6)
	require.NoError(t, stale.Error)
	assert.Equal(t, int64(0), stale.RowsAffected)

	// The current token wins and bumps
	current := db.Model(&schedulerModels.Enrollment{}).
		Where("id = ? AND version = ?", enrollment.ID, enrollment.Version).
		Update("version", enrollment.Version+1)
	require.NoError(t, current.Error)
	assert.Equal(t, int64(1), current.RowsAffected)
}

func TestVersionIncrementsOnCompletion(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	user, token := createTestUser(t, db)

	enrollment, _ := seedSchedule(t, db, user.ID, []schedulerModels.ScheduledItem{
		{Title: "Lesson 1", SlotID: schedulerModels.Slot1, Type: schedulerModels.ItemRecorded},
	})
	before := enrollment.Version

	status, _ := markCompleted(t, app, token, mustItemID(t, db, enrollment.ID))
	assert.Equal(t, fiber.StatusOK, status)

	var after schedulerModels.Enrollment
	require.NoError(t, db.First(&after, enrollment.ID).Error)
	assert.Equal(t, before+1, after.Version)
}

func mustItemID(t *testing.T, db *gorm.DB, enrollmentID uint) string {
	t.Helper()

	var item schedulerModels.ScheduledItem
	require.NoError(t, db.
		Joins("JOIN scheduled_courses ON scheduled_courses.id = scheduled_items.scheduled_course_id").
		Where("scheduled_courses.enrollment_id = ?", enrollmentID).
		First(&item).Error)
	return item.ItemID
}

func weekPreview(t *testing.T, app *fiber.App, token string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/scheduler/week-preview", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func TestWeekPreviewEmptyState(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	_, token := createTestUser(t, db)

	// No schedule yet still answers 200 with an empty list
	status, result := weekPreview(t, app, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, result["success"])

	data := result["data"].(map[string]interface{})
	assert.Empty(t, data["courses"])

	weekDate := data["weekDate"].(map[string]interface{})
	assert.NotEmpty(t, weekDate["date"])
	assert.NotEmpty(t, weekDate["formattedDate"])
	assert.Greater(t, weekDate["weekNumber"], float64(0))
}

func TestWeekPreviewSlotOrdering(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	user, token := createTestUser(t, db)

	// Inserted out of slot order on purpose
	seedSchedule(t, db, user.ID, []schedulerModels.ScheduledItem{
		{Title: "Evening", SlotID: schedulerModels.Slot6, Type: schedulerModels.ItemRecorded},
		{Title: "Morning", SlotID: schedulerModels.Slot2, Type: schedulerModels.ItemRecorded},
		{Title: "Afternoon", SlotID: schedulerModels.Slot4, Type: schedulerModels.ItemLive},
	})

	status, result := weekPreview(t, app, token)
	assert.Equal(t, fiber.StatusOK, status)

	courses := result["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 3)

	slots := make([]string, 0, len(courses))
	for _, raw := range courses {
		slots = append(slots, raw.(map[string]interface{})["slotId"].(string))
	}
	assert.Equal(t, []string{"slot_2", "slot_4", "slot_6"}, slots)
}

func TestWeekPreviewDayWindow(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	user, token := createTestUser(t, db)

	today := utils.StartOfDay(time.Now())
	seedSchedule(t, db, user.ID, []schedulerModels.ScheduledItem{
		{Title: "At midnight", SlotID: schedulerModels.Slot1, Date: today, Type: schedulerModels.ItemRecorded},
		{Title: "Last moment", SlotID: schedulerModels.Slot6, Date: utils.EndOfDay(today), Type: schedulerModels.ItemRecorded},
		{Title: "Day before", SlotID: schedulerModels.Slot3, Date: today.Add(-time.Millisecond), Type: schedulerModels.ItemRecorded},
		{Title: "Day after", SlotID: schedulerModels.Slot3, Date: today.AddDate(0, 0, 1), Type: schedulerModels.ItemRecorded},
	})

	status, result := weekPreview(t, app, token)
	assert.Equal(t, fiber.StatusOK, status)

	courses := result["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 2)

	titles := make([]string, 0, len(courses))
	for _, raw := range courses {
		titles = append(titles, raw.(map[string]interface{})["title"].(string))
	}
	assert.ElementsMatch(t, []string{"At midnight", "Last moment"}, titles)
}

func TestWeekPreviewCourseInfo(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	user, token := createTestUser(t, db)

	seedSchedule(t, db, user.ID, []schedulerModels.ScheduledItem{
		{Title: "Lesson 1", ModuleTitle: "Basics", SlotID: schedulerModels.Slot2, LessonNumber: 1, TotalLessons: 20, Type: schedulerModels.ItemRecorded},
	})

	status, result := weekPreview(t, app, token)
	assert.Equal(t, fiber.StatusOK, status)

	courses := result["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 1)

	item := courses[0].(map[string]interface{})
	assert.Equal(t, "Lesson 1", item["title"])
	assert.Equal(t, "Basics", item["moduleTitle"])
	assert.Equal(t, float64(1), item["lessonNumber"])
	assert.Equal(t, float64(20), item["totalLessons"])
	assert.Equal(t, "recorded", item["type"])
	assert.Equal(t, false, item["isCompleted"])
	assert.NotEmpty(t, item["itemId"])

	info := item["courseInfo"].(map[string]interface{})
	assert.Equal(t, "Spanish for Beginners", info["title"])
	assert.Equal(t, "#2D5BFF", info["backgroundColorHex"])
	assert.Equal(t, "/icons/spanish.png", info["iconUrl"])
	assert.NotNil(t, info["_id"])
}

func TestMarkCompletedThenPreviewScenario(t *testing.T) {
	db := setupTestDb(t)
	app := setupTestApp()
	user, token := createTestUser(t, db)

	items := []schedulerModels.ScheduledItem{
		{Title: "Lesson 1", SlotID: schedulerModels.Slot2, Type: schedulerModels.ItemRecorded},
		{Title: "Lesson 2", SlotID: schedulerModels.Slot4, Type: schedulerModels.ItemRecorded},
	}
	seedSchedule(t, db, user.ID, items)

	status, _ := markCompleted(t, app, token, items[0].ItemID)
	require.Equal(t, fiber.StatusOK, status)

	// The preview reflects the completed flag on the marked item only
	status, result := weekPreview(t, app, token)
	assert.Equal(t, fiber.StatusOK, status)

	courses := result["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 2)
	assert.Equal(t, true, courses[0].(map[string]interface{})["isCompleted"])
	assert.Equal(t, false, courses[1].(map[string]interface{})["isCompleted"])
}
