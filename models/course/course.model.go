package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course types
const (
	TypeRecorded = "recorded"
	TypeLive     = "live"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	InstructorID       uint           `json:"instructor_id" gorm:"index"`
	Category           string         `json:"category" gorm:"index;default:''"`
	Type               string         `json:"type" gorm:"default:'recorded'"` // recorded, live
	Duration           int64          `json:"duration" gorm:"default:0"`      // duration in hours
	LessonCount        int            `json:"lesson_count" gorm:"default:0"`
	Status             string         `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	RatingAverage      float64        `json:"rating_average" gorm:"default:0"`
	RatingCount        int64          `json:"rating_count" gorm:"default:0"`
	BackgroundColorHex string         `json:"background_color_hex" gorm:"default:'#2D5BFF'"`
	IconURL            string         `json:"icon_url"`
	ThumbnailURL       string         `json:"thumbnail_url"`
	Tags               datatypes.JSON `json:"tags"`
	IsPublished        bool           `json:"is_published" gorm:"default:false"`
	IsDeleted          bool           `gorm:"default:false"`
}
