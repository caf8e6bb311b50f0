package scheduler

import (
	"time"

	"gorm.io/gorm"
)

// Scheduled course statuses
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// Enrollment is the per-learner scheduler document: one record per user,
// owning all of the learner's scheduled courses and settings.
type Enrollment struct {
	gorm.Model
	UserID           uint              `json:"user_id" gorm:"uniqueIndex;not null"`
	Version          int64             `json:"version" gorm:"default:0"` // Optimistic-concurrency token, bumped on every progress write
	ScheduledCourses []ScheduledCourse `json:"scheduled_courses" gorm:"foreignKey:EnrollmentID"`
	Settings         Settings          `json:"settings" gorm:"foreignKey:EnrollmentID"`
	IsDeleted        bool              `gorm:"default:false"`
}

// TableName keeps the scheduler's enrollment table apart from catalog
// course enrollments
func (Enrollment) TableName() string {
	return "scheduler_enrollments"
}

// ScheduledCourse groups the scheduled items of one course for one learner.
// CompletedCount must always equal the number of its items with
// IsCompleted = true; it is recomputed on every save.
type ScheduledCourse struct {
	gorm.Model
	EnrollmentID   uint            `json:"enrollment_id" gorm:"index;not null"`
	CourseID       uint            `json:"course_id" gorm:"index;not null"`
	CompletedCount int             `json:"completed" gorm:"default:0"`
	TotalCount     int             `json:"total" gorm:"default:0"`
	StartDate      time.Time       `json:"start_date"`
	Status         string          `json:"status" gorm:"default:'active'"` // active, paused, completed
	Items          []ScheduledItem `json:"items" gorm:"foreignKey:ScheduledCourseID"`
	IsDeleted      bool            `gorm:"default:false"`
}

// Settings holds per-enrollment scheduler preferences. Configuration only;
// the reminder job is the sole consumer.
type Settings struct {
	gorm.Model
	EnrollmentID        uint `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	DefaultWeekDay      int  `json:"default_week_day" gorm:"default:3"` // 0=Sunday..6=Saturday
	RemindersEnabled    bool `json:"reminders_enabled"`                 // No column default: a false on insert must stay false
	ReminderLeadMinutes int  `json:"reminder_lead_minutes" gorm:"default:30"`
}
