package schedulerController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	schedulerModels "lms/models/scheduler"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	errEnrollmentNotFound = errors.New("enrollment not found")
	errItemNotFound       = errors.New("item not found")
	errVersionConflict    = errors.New("enrollment was modified concurrently")
)

// CourseProgress is the progress pair returned after marking an item
type CourseProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// MarkItemCompleted handles POST /api/learning/mark-completed
func MarkItemCompleted(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	itemID, ok := c.Locals("validatedItemID").(string)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "itemId is required")
	}

	progress, err := markItemCompleted(database.Database.Db, userID, itemID)
	switch {
	case errors.Is(err, errEnrollmentNotFound), errors.Is(err, errItemNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Schedule item not found")
	case errors.Is(err, errVersionConflict):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Schedule was updated concurrently, please retry")
	case err != nil:
		log.Printf("Error marking item %s completed for user %d: %v", itemID, userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to mark item completed")
	}

	return middleware.DataResponse(c, fiber.Map{
		"courseProgress": progress,
	})
}

// markItemCompleted finds the item across all of the learner's scheduled
// courses, completes it and recomputes the owning course's counter. The save
// is guarded by the enrollment's version token; a lost race is retried once
// before surfacing a conflict. Re-running on an already-completed item
// rewrites the same state, so the operation is idempotent.
func markItemCompleted(db *gorm.DB, userID uint, itemID string) (*CourseProgress, error) {
	for attempt := 0; attempt < 2; attempt++ {
		var enrollment schedulerModels.Enrollment
		if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errEnrollmentNotFound
			}
			return nil, err
		}

		var item schedulerModels.ScheduledItem
		err := db.
			Joins("JOIN scheduled_courses ON scheduled_courses.id = scheduled_items.scheduled_course_id").
			Where("scheduled_courses.enrollment_id = ? AND scheduled_items.item_id = ?", enrollment.ID, itemID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errItemNotFound
			}
			return nil, err
		}

		progress, err := saveCompletion(db, &enrollment, &item)
		if err == errVersionConflict {
			continue // lost the race, re-read and retry once
		}
		return progress, err
	}
	return nil, errVersionConflict
}

func saveCompletion(db *gorm.DB, enrollment *schedulerModels.Enrollment, item *schedulerModels.ScheduledItem) (*CourseProgress, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Version guard: the whole read-modify-write loses to any concurrent
	// writer that bumped the token first
	guard := tx.Model(&schedulerModels.Enrollment{}).
		Where("id = ? AND version = ?", enrollment.ID, enrollment.Version).
		Update("version", enrollment.Version+1)
	if guard.Error != nil {
		tx.Rollback()
		return nil, guard.Error
	}
	if guard.RowsAffected == 0 {
		tx.Rollback()
		return nil, errVersionConflict
	}

	now := time.Now()
	if err := tx.Model(&schedulerModels.ScheduledItem{}).Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Recompute the owning course's counters from its item rows
	var completed, total int64
	if err := tx.Model(&schedulerModels.ScheduledItem{}).
		Where("scheduled_course_id = ? AND is_completed = ?", item.ScheduledCourseID, true).
		Count(&completed).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&schedulerModels.ScheduledItem{}).
		Where("scheduled_course_id = ?", item.ScheduledCourseID).
		Count(&total).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	updates := map[string]interface{}{
		"completed_count": completed,
		"total_count":     total,
	}
	if completed == total {
		updates["status"] = schedulerModels.StatusCompleted
	}
	if err := tx.Model(&schedulerModels.ScheduledCourse{}).
		Where("id = ?", item.ScheduledCourseID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &CourseProgress{Completed: int(completed), Total: int(total)}, nil
}
