package utils

import (
	"fmt"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	schedulerModels "lms/models/scheduler"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupReminderDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{ReminderLeadMinutes: 30}

	return db
}

func seedReminderItem(t *testing.T, db *gorm.DB, slot string, leadMinutes int, enabled bool) schedulerModels.ScheduledItem {
	t.Helper()

	user := models.User{
		Name:     "Learner",
		Email:    fmt.Sprintf("learner-%s@example.com", uuid.NewString()[:8]),
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Title: "Spanish for Beginners", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	enrollment := schedulerModels.Enrollment{UserID: user.ID}
	require.NoError(t, db.Create(&enrollment).Error)
	require.NoError(t, db.Create(&schedulerModels.Settings{
		EnrollmentID:        enrollment.ID,
		RemindersEnabled:    enabled,
		ReminderLeadMinutes: leadMinutes,
	}).Error)

	sc := schedulerModels.ScheduledCourse{
		EnrollmentID: enrollment.ID,
		CourseID:     course.ID,
		Status:       schedulerModels.StatusActive,
	}
	require.NoError(t, db.Create(&sc).Error)

	item := schedulerModels.ScheduledItem{
		ScheduledCourseID: sc.ID,
		ItemID:            uuid.NewString(),
		Title:             "Live conversation",
		Date:              StartOfDay(time.Now()),
		SlotID:            slot,
		Type:              schedulerModels.ItemLive,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestProcessDueRemindersInsideWindow(t *testing.T) {
	db := setupReminderDb(t)
	item := seedReminderItem(t, db, schedulerModels.Slot5, 30, true) // slot_5 opens 16:00

	// Ten minutes before the slot opens, inside the 30 minute lead
	now := StartOfDay(time.Now()).Add(15*time.Hour + 50*time.Minute)
	ProcessDueReminders(now)

	var updated schedulerModels.ScheduledItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.True(t, updated.ReminderSent)

	// A second run finds nothing left to remind
	ProcessDueReminders(now)
	var count int64
	require.NoError(t, db.Model(&schedulerModels.ScheduledItem{}).
		Where("reminder_sent = ?", true).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProcessDueRemindersOutsideWindow(t *testing.T) {
	db := setupReminderDb(t)
	item := seedReminderItem(t, db, schedulerModels.Slot5, 30, true)

	// Two hours before the slot opens, outside the lead window
	now := StartOfDay(time.Now()).Add(14 * time.Hour)
	ProcessDueReminders(now)

	var updated schedulerModels.ScheduledItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.False(t, updated.ReminderSent)
}

func TestSettingsOptOutSurvivesInsert(t *testing.T) {
	db := setupReminderDb(t)

	enrollment := schedulerModels.Enrollment{UserID: 1}
	require.NoError(t, db.Create(&enrollment).Error)
	require.NoError(t, db.Create(&schedulerModels.Settings{
		EnrollmentID:     enrollment.ID,
		RemindersEnabled: false,
	}).Error)

	// A false at creation must not be rewritten by a column default
	var settings schedulerModels.Settings
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&settings).Error)
	assert.False(t, settings.RemindersEnabled)
}

func TestProcessDueRemindersRespectsOptOut(t *testing.T) {
	db := setupReminderDb(t)
	item := seedReminderItem(t, db, schedulerModels.Slot5, 30, false)

	now := StartOfDay(time.Now()).Add(15*time.Hour + 50*time.Minute)
	ProcessDueReminders(now)

	var updated schedulerModels.ScheduledItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.False(t, updated.ReminderSent)
}
