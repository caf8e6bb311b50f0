package course

import (
	"time"

	"gorm.io/gorm"
)

// Live session statuses
const (
	SessionScheduled = "SCHEDULED"
	SessionLive      = "LIVE"
	SessionEnded     = "ENDED"
	SessionCancelled = "CANCELLED"
)

// LiveSession represents one scheduled live class of a live course
type LiveSession struct {
	gorm.Model
	CourseID       uint      `json:"course_id" gorm:"index;not null"`
	Topic          string    `json:"topic"`
	SequenceNumber int       `json:"sequence_number" gorm:"default:1"` // Session order in course
	StartTime      time.Time `json:"start_time" gorm:"index;not null"`
	EndTime        time.Time `json:"end_time"`
	MeetingURL     string    `json:"meeting_url"`
	Status         string    `json:"status" gorm:"default:'SCHEDULED'"`
	IsDeleted      bool      `gorm:"default:false"`
}
