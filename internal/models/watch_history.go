package models

import (
	"time"

	"github.com/google/uuid"
)

// WatchHistory rows are append-only; they are removed only by the cascade
// when the owning user is deleted.
type WatchHistory struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	MovieID              uuid.UUID `gorm:"type:uuid;not null;index" json:"movie_id"`
	WatchedAt            time.Time `gorm:"not null" json:"watched_at"`
	WatchDurationMinutes int       `gorm:"not null;default:0" json:"watch_duration_minutes"`
	Completed            bool      `gorm:"not null;default:false" json:"completed"`
	User                 User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Movie                Movie     `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
}
