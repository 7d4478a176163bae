package models

import (
	"time"

	"github.com/google/uuid"
)

// StorageAnalytics is a per-user consumption aggregate. It is seeded at
// signup and read back by the storage endpoint; nothing in this service
// recomputes it.
type StorageAnalytics struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	TotalMoviesWatched int       `gorm:"not null;default:0" json:"total_movies_watched"`
	TotalStorageUsedMB float64   `gorm:"not null;default:0" json:"total_storage_used_mb"`
	CacheSizeMB        float64   `gorm:"not null;default:0" json:"cache_size_mb"`
	LastCalculated     time.Time `json:"last_calculated"`
	User               User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
