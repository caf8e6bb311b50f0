package schedulerController

import (
	"fmt"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	schedulerModels "lms/models/scheduler"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recorded lessons placed into a generated week
const recordedLessonsPerWeek = 3

// Weekdays recorded lessons land on (Monday, Wednesday, Friday)
var recordedLessonDays = []int{1, 3, 5}

// GenerateWeek handles POST /api/scheduler/generate-week: builds scheduled
// items for the learner's active catalog enrollments across one week. Live
// sessions keep their real dates; recorded lessons are spread over the week.
// Re-running for the same week does not duplicate items.
func GenerateWeek(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	weekStart, ok := c.Locals("validatedWeekStart").(time.Time)
	if !ok {
		weekStart = utils.StartOfDay(time.Now())
	}
	weekEnd := utils.EndOfDay(weekStart.AddDate(0, 0, 6))

	db := database.Database.Db

	var catalogEnrollments []courseModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ? AND status != ?", userID, false, "COMPLETED").
		Find(&catalogEnrollments).Error; err != nil {
		log.Printf("Error loading enrollments for user %d: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate weekly plan")
	}

	if len(catalogEnrollments) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No active enrollments to schedule")
	}

	enrollment, err := ensureSchedulerEnrollment(db, userID)
	if err != nil {
		log.Printf("Error ensuring scheduler enrollment for user %d: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate weekly plan")
	}

	created := 0
	for _, ce := range catalogEnrollments {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", ce.CourseID, false).First(&course).Error; err != nil {
			continue
		}

		sc, err := ensureScheduledCourse(db, enrollment.ID, course.ID, weekStart)
		if err != nil {
			log.Printf("Error ensuring scheduled course %d: %v", course.ID, err)
			continue
		}
		if sc.Status == schedulerModels.StatusPaused {
			continue
		}

		var n int
		if course.Type == courseModels.TypeLive {
			n, err = planLiveItems(db, sc, &course, weekStart, weekEnd)
		} else {
			n, err = planRecordedItems(db, sc, &course, weekStart)
		}
		if err != nil {
			log.Printf("Error planning items for course %d: %v", course.ID, err)
			continue
		}
		created += n

		if err := refreshCourseCounters(db, sc.ID); err != nil {
			log.Printf("Error refreshing counters for scheduled course %d: %v", sc.ID, err)
		}
	}

	// Bump the version token: generation is a writer like any other
	if err := db.Model(&schedulerModels.Enrollment{}).Where("id = ?", enrollment.ID).
		Update("version", gorm.Expr("version + 1")).Error; err != nil {
		log.Printf("Error bumping enrollment version: %v", err)
	}

	return middleware.DataResponse(c, fiber.Map{
		"weekStart":    weekStart.Format(time.RFC3339),
		"itemsCreated": created,
	})
}

// ensureSchedulerEnrollment returns the learner's scheduler enrollment,
// creating it with default settings on first use
func ensureSchedulerEnrollment(db *gorm.DB, userID uint) (*schedulerModels.Enrollment, error) {
	var enrollment schedulerModels.Enrollment
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&enrollment).Error
	if err == nil {
		return &enrollment, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	enrollment = schedulerModels.Enrollment{UserID: userID}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, err
	}
	settings := schedulerModels.Settings{
		EnrollmentID:     enrollment.ID,
		RemindersEnabled: true,
	}
	if err := db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func ensureScheduledCourse(db *gorm.DB, enrollmentID, courseID uint, startDate time.Time) (*schedulerModels.ScheduledCourse, error) {
	var sc schedulerModels.ScheduledCourse
	err := db.Where("enrollment_id = ? AND course_id = ? AND is_deleted = ?", enrollmentID, courseID, false).First(&sc).Error
	if err == nil {
		return &sc, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	sc = schedulerModels.ScheduledCourse{
		EnrollmentID: enrollmentID,
		CourseID:     courseID,
		StartDate:    startDate,
		Status:       schedulerModels.StatusActive,
	}
	if err := db.Create(&sc).Error; err != nil {
		return nil, err
	}
	return &sc, nil
}

// planLiveItems mirrors the course's scheduled live sessions inside the week
// window into scheduled items
func planLiveItems(db *gorm.DB, sc *schedulerModels.ScheduledCourse, course *courseModels.Course, weekStart, weekEnd time.Time) (int, error) {
	var sessions []courseModels.LiveSession
	if err := db.Where("course_id = ? AND is_deleted = ? AND status = ?", course.ID, false, courseModels.SessionScheduled).
		Where("start_time >= ? AND start_time <= ?", weekStart, weekEnd).
		Order("start_time asc").
		Find(&sessions).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, session := range sessions {
		day := utils.StartOfDay(session.StartTime)
		slot := slotForHour(session.StartTime.Hour())

		// A session already mirrored for this day+slot is skipped
		var existing schedulerModels.ScheduledItem
		err := db.Where("scheduled_course_id = ? AND date >= ? AND date <= ? AND slot_id = ? AND type = ?",
			sc.ID, day, utils.EndOfDay(day), slot, schedulerModels.ItemLive).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, err
		}

		item := schedulerModels.ScheduledItem{
			ScheduledCourseID: sc.ID,
			ItemID:            uuid.NewString(),
			Title:             session.Topic,
			ModuleTitle:       course.Title,
			Date:              day,
			SlotID:            slot,
			LessonNumber:      session.SequenceNumber,
			TotalLessons:      course.LessonCount,
			Type:              schedulerModels.ItemLive,
		}
		if err := db.Create(&item).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// planRecordedItems continues the course's lesson sequence across the week's
// fixed study days
func planRecordedItems(db *gorm.DB, sc *schedulerModels.ScheduledCourse, course *courseModels.Course, weekStart time.Time) (int, error) {
	// Next lesson continues from the highest one already scheduled
	var lastItem schedulerModels.ScheduledItem
	nextLesson := 1
	if err := db.Where("scheduled_course_id = ? AND type = ?", sc.ID, schedulerModels.ItemRecorded).
		Order("lesson_number desc").First(&lastItem).Error; err == nil {
		nextLesson = lastItem.LessonNumber + 1
	} else if err != gorm.ErrRecordNotFound {
		return 0, err
	}

	created := 0
	for i := 0; i < recordedLessonsPerWeek && created < recordedLessonsPerWeek; i++ {
		if course.LessonCount > 0 && nextLesson > course.LessonCount {
			break // course fully scheduled
		}

		// Place on Monday/Wednesday/Friday of the target week
		offset := (recordedLessonDays[i] - int(weekStart.Weekday()) + 7) % 7
		day := utils.StartOfDay(weekStart.AddDate(0, 0, offset))
		slot := schedulerModels.Slot2

		// Skip when this week-day already carries a recorded lesson of the course
		var existing schedulerModels.ScheduledItem
		err := db.Where("scheduled_course_id = ? AND date >= ? AND date <= ? AND type = ?",
			sc.ID, day, utils.EndOfDay(day), schedulerModels.ItemRecorded).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, err
		}

		item := schedulerModels.ScheduledItem{
			ScheduledCourseID: sc.ID,
			ItemID:            uuid.NewString(),
			Title:             fmt.Sprintf("%s - Lesson %d", course.Title, nextLesson),
			ModuleTitle:       course.Title,
			Date:              day,
			SlotID:            slot,
			LessonNumber:      nextLesson,
			TotalLessons:      course.LessonCount,
			Type:              schedulerModels.ItemRecorded,
		}
		if err := db.Create(&item).Error; err != nil {
			return created, err
		}
		created++
		nextLesson++
	}
	return created, nil
}

// refreshCourseCounters re-derives the progress pair from item rows
func refreshCourseCounters(db *gorm.DB, scheduledCourseID uint) error {
	var completed, total int64
	if err := db.Model(&schedulerModels.ScheduledItem{}).
		Where("scheduled_course_id = ? AND is_completed = ?", scheduledCourseID, true).
		Count(&completed).Error; err != nil {
		return err
	}
	if err := db.Model(&schedulerModels.ScheduledItem{}).
		Where("scheduled_course_id = ?", scheduledCourseID).
		Count(&total).Error; err != nil {
		return err
	}
	return db.Model(&schedulerModels.ScheduledCourse{}).
		Where("id = ?", scheduledCourseID).
		Updates(map[string]interface{}{
			"completed_count": completed,
			"total_count":     total,
		}).Error
}

// slotForHour maps a clock hour to the slot whose window contains it
func slotForHour(hour int) string {
	best := schedulerModels.Slot1
	bestHour := -1
	for slot, start := range schedulerModels.SlotStartHours {
		if start <= hour && start > bestHour {
			best = slot
			bestHour = start
		}
	}
	return best
}
