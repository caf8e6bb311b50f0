package schedulerController

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"lms/middleware"
	courseModels "lms/models/course"
	schedulerModels "lms/models/scheduler"
	"lms/utils"
	schedulerValidator "lms/validators/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPlanApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/scheduler/generate-week", middleware.JWTMiddleware, schedulerValidator.GenerateWeek(), GenerateWeek)
	return app
}

func generateWeek(t *testing.T, app *fiber.App, token, weekStart string) (int, map[string]interface{}) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"week_start": weekStart})
	req := httptest.NewRequest("POST", "/api/scheduler/generate-week", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func enrollInCourse(t *testing.T, db *gorm.DB, userID uint, course courseModels.Course) courseModels.Course {
	t.Helper()

	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&courseModels.Enrollment{
		UserID:   userID,
		CourseID: course.ID,
		Status:   "ENROLLED",
	}).Error)
	return course
}

func TestGenerateWeekRecordedCourse(t *testing.T) {
	db := setupTestDb(t)
	app := setupPlanApp()
	user, token := createTestUser(t, db)

	enrollInCourse(t, db, user.ID, courseModels.Course{
		Title:       "Spanish for Beginners",
		Type:        courseModels.TypeRecorded,
		LessonCount: 20,
		IsPublished: true,
	})

	// Monday 2026-09-07
	status, result := generateWeek(t, app, token, "2026-09-07")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(3), result["data"].(map[string]interface{})["itemsCreated"])

	var items []schedulerModels.ScheduledItem
	require.NoError(t, db.Order("date asc").Find(&items).Error)
	require.Len(t, items, 3)

	// Lessons land on Monday, Wednesday and Friday and continue the sequence
	assert.Equal(t, time.Monday, items[0].Date.Weekday())
	assert.Equal(t, time.Wednesday, items[1].Date.Weekday())
	assert.Equal(t, time.Friday, items[2].Date.Weekday())
	for i, item := range items {
		assert.Equal(t, i+1, item.LessonNumber)
		assert.Equal(t, schedulerModels.Slot2, item.SlotID)
		assert.Equal(t, schedulerModels.ItemRecorded, item.Type)
		assert.Equal(t, 20, item.TotalLessons)
		assert.NotEmpty(t, item.ItemID)
	}

	// The scheduler enrollment and its settings were created on first use
	var enrollment schedulerModels.Enrollment
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&enrollment).Error)
	var settings schedulerModels.Settings
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&settings).Error)
	assert.True(t, settings.RemindersEnabled)
	assert.Equal(t, 30, settings.ReminderLeadMinutes)
}

func TestGenerateWeekIsIdempotent(t *testing.T) {
	db := setupTestDb(t)
	app := setupPlanApp()
	user, token := createTestUser(t, db)

	enrollInCourse(t, db, user.ID, courseModels.Course{
		Title:       "Spanish for Beginners",
		Type:        courseModels.TypeRecorded,
		LessonCount: 20,
		IsPublished: true,
	})

	status, _ := generateWeek(t, app, token, "2026-09-07")
	require.Equal(t, fiber.StatusOK, status)

	// A re-run of the same week creates nothing new
	status, result := generateWeek(t, app, token, "2026-09-07")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), result["data"].(map[string]interface{})["itemsCreated"])

	var count int64
	require.NoError(t, db.Model(&schedulerModels.ScheduledItem{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestGenerateWeekContinuesLessonSequence(t *testing.T) {
	db := setupTestDb(t)
	app := setupPlanApp()
	user, token := createTestUser(t, db)

	enrollInCourse(t, db, user.ID, courseModels.Course{
		Title:       "Spanish for Beginners",
		Type:        courseModels.TypeRecorded,
		LessonCount: 20,
		IsPublished: true,
	})

	status, _ := generateWeek(t, app, token, "2026-09-07")
	require.Equal(t, fiber.StatusOK, status)

	// The following week picks up at lesson 4
	status, result := generateWeek(t, app, token, "2026-09-14")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(3), result["data"].(map[string]interface{})["itemsCreated"])

	var lastItem schedulerModels.ScheduledItem
	require.NoError(t, db.Order("lesson_number desc").First(&lastItem).Error)
	assert.Equal(t, 6, lastItem.LessonNumber)
}

func TestGenerateWeekCapsAtLessonCount(t *testing.T) {
	db := setupTestDb(t)
	app := setupPlanApp()
	user, token := createTestUser(t, db)

	enrollInCourse(t, db, user.ID, courseModels.Course{
		Title:       "Crash Course",
		Type:        courseModels.TypeRecorded,
		LessonCount: 2,
		IsPublished: true,
	})

	status, result := generateWeek(t, app, token, "2026-09-07")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), result["data"].(map[string]interface{})["itemsCreated"])
}

func TestGenerateWeekLiveCourse(t *testing.T) {
	db := setupTestDb(t)
	app := setupPlanApp()
	user, token := createTestUser(t, db)

	course := enrollInCourse(t, db, user.ID, courseModels.Course{
		Title:       "Live Conversation Club",
		Type:        courseModels.TypeLive,
		LessonCount: 8,
		IsPublished: true,
	})

	// Tuesday 16:00 inside the generated week
	sessionStart := time.Date(2026, 9, 8, 16, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&courseModels.LiveSession{
		CourseID:       course.ID,
		Topic:          "Ordering food",
		SequenceNumber: 4,
		StartTime:      sessionStart,
		EndTime:        sessionStart.Add(time.Hour),
		Status:         courseModels.SessionScheduled,
	}).Error)

	status, result := generateWeek(t, app, token, "2026-09-07")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), result["data"].(map[string]interface{})["itemsCreated"])

	var item schedulerModels.ScheduledItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, "Ordering food", item.Title)
	assert.Equal(t, schedulerModels.ItemLive, item.Type)
	assert.Equal(t, 4, item.LessonNumber)
	assert.Equal(t, schedulerModels.Slot5, item.SlotID) // 16:00 opens slot_5
	assert.True(t, item.Date.Equal(utils.StartOfDay(sessionStart)))
}

func TestCatalogAndSchedulerEnrollmentsCoexist(t *testing.T) {
	db := setupTestDb(t)
	app := setupPlanApp()
	user, token := createTestUser(t, db)

	// Two catalog enrollments for one learner, plus the scheduler's own
	// per-learner enrollment row created by plan generation
	enrollInCourse(t, db, user.ID, courseModels.Course{
		Title:       "Spanish for Beginners",
		Type:        courseModels.TypeRecorded,
		LessonCount: 20,
		IsPublished: true,
	})
	enrollInCourse(t, db, user.ID, courseModels.Course{
		Title:       "French for Beginners",
		Type:        courseModels.TypeRecorded,
		LessonCount: 12,
		IsPublished: true,
	})

	status, _ := generateWeek(t, app, token, "2026-09-07")
	require.Equal(t, fiber.StatusOK, status)

	// The two enrollment kinds live in separate tables
	assert.True(t, db.Migrator().HasTable("course_enrollments"))
	assert.True(t, db.Migrator().HasTable("scheduler_enrollments"))

	var catalogCount int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).Where("user_id = ?", user.ID).Count(&catalogCount).Error)
	assert.Equal(t, int64(2), catalogCount)

	var schedulerCount int64
	require.NoError(t, db.Model(&schedulerModels.Enrollment{}).Where("user_id = ?", user.ID).Count(&schedulerCount).Error)
	assert.Equal(t, int64(1), schedulerCount)

	var scheduledCourses []schedulerModels.ScheduledCourse
	require.NoError(t, db.Find(&scheduledCourses).Error)
	assert.Len(t, scheduledCourses, 2)
}

func TestGenerateWeekNoEnrollments(t *testing.T) {
	db := setupTestDb(t)
	app := setupPlanApp()
	_, token := createTestUser(t, db)

	status, result := generateWeek(t, app, token, "2026-09-07")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, result["success"])
}
