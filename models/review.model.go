package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index:idx_user_course_review,unique" json:"user_id"` // Who gave the review
	CourseID  uint   `gorm:"not null;index:idx_user_course_review,unique" json:"course_id"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"` // 1–5 rating
	Comment   string `gorm:"type:text;default:''" json:"comment"`                      // Optional comment
	IsDeleted bool   `gorm:"default:false"`
}
