package models

import "gorm.io/gorm"

// Favorite marks a course a user wants quick access to
type Favorite struct {
	gorm.Model
	UserID    uint `gorm:"not null;index:idx_user_course_fav,unique" json:"user_id"`
	CourseID  uint `gorm:"not null;index:idx_user_course_fav,unique" json:"course_id"`
	IsDeleted bool `gorm:"default:false"`
}
