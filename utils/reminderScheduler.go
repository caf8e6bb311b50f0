package utils

import (
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	schedulerModels "lms/models/scheduler"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the session reminder job
func InitializeReminderScheduler() *cron.Cron {
	log.Println("[REMINDER-SCHEDULER] Initializing session reminder scheduler...")

	c := cron.New()

	// Check every 10 minutes for scheduled items entering their reminder window
	c.AddFunc("*/10 * * * *", func() {
		ProcessDueReminders(time.Now())
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Reminder scheduler started - runs every 10 minutes")
	return c
}

// ProcessDueReminders emails learners whose scheduled items start within their
// configured lead time. Safe to re-run; sent reminders are flagged.
func ProcessDueReminders(now time.Time) {
	db := database.Database.Db

	// Candidate items: today, not completed, not yet reminded
	var items []schedulerModels.ScheduledItem
	if err := db.
		Where("date >= ? AND date <= ?", StartOfDay(now), EndOfDay(now)).
		Where("is_completed = ? AND reminder_sent = ?", false, false).
		Find(&items).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching today's items: %v", err)
		return
	}

	for _, item := range items {
		var sc schedulerModels.ScheduledCourse
		if err := db.Where("id = ?", item.ScheduledCourseID).First(&sc).Error; err != nil {
			continue
		}

		var enrollment schedulerModels.Enrollment
		if err := db.Where("id = ?", sc.EnrollmentID).First(&enrollment).Error; err != nil {
			continue
		}

		var settings schedulerModels.Settings
		if err := db.Where("enrollment_id = ?", enrollment.ID).First(&settings).Error; err != nil || !settings.RemindersEnabled {
			continue
		}

		// Anchor the reminder on the slot's start hour
		startHour, ok := schedulerModels.SlotStartHours[item.SlotID]
		if !ok {
			continue
		}
		start := StartOfDay(item.Date).Add(time.Duration(startHour) * time.Hour)
		lead := time.Duration(settings.ReminderLeadMinutes) * time.Minute

		if now.Before(start.Add(-lead)) || now.After(start) {
			continue
		}

		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.UserID, false).First(&user).Error; err != nil {
			continue
		}

		var course courseModels.Course
		db.Where("id = ?", sc.CourseID).First(&course)

		SendSessionReminderEmail(user.Email, user.Name, item.Title, course.Title, start)

		if err := db.Model(&schedulerModels.ScheduledItem{}).Where("id = ?", item.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error flagging reminder for item %s: %v", item.ItemID, err)
			continue
		}
		log.Printf("[REMINDER-SCHEDULER] Sent reminder for item %s to %s", item.ItemID, user.Email)
	}
}
