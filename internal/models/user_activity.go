package models

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity is the one-to-one activity record behind inactivity detection.
// Notified stays false until an inactivity warning is recorded for the current
// episode; a new login clears it again.
type UserActivity struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	LastLogin  time.Time  `gorm:"not null;index" json:"last_login"`
	LastWatch  *time.Time `json:"last_watch"`
	LoginCount int        `gorm:"not null;default:0" json:"login_count"`
	Active     bool       `gorm:"not null;default:true" json:"active"`
	Notified   bool       `gorm:"not null;default:false" json:"notified"`
	NotifiedAt *time.Time `json:"notified_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
