package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationInactiveWarning = "INACTIVE_WARNING"
	NotificationNewContent      = "NEW_CONTENT"
)

// Notification is an append-only log entry. Only the Read flag is ever
// mutated; rows disappear only via the user-deletion cascade.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    string    `gorm:"size:50;not null" json:"type"`
	Title   string    `gorm:"size:255;not null" json:"title"`
	Message string    `gorm:"type:text" json:"message"`
	SentAt  time.Time `gorm:"not null;index" json:"sent_at"`
	Read    bool      `gorm:"not null;default:false" json:"read"`
	User    User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
