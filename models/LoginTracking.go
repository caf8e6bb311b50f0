package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginTracking records one successful login with its client context.
// Surfaced to the learner through the login-history endpoint.
type LoginTracking struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"` // Raw User-Agent header
	Timestamp time.Time `json:"timestamp"`
	IsDeleted bool      `gorm:"default:false"`
}
