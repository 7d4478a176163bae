package models

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Genre           string    `gorm:"size:100" json:"genre"`
	Director        string    `gorm:"size:255" json:"director"`
	Cast            string    `gorm:"type:text" json:"cast"`
	ReleaseYear     int       `json:"release_year"`
	Rating          float64   `json:"rating"`
	DurationMinutes int       `json:"duration_minutes"`
	Language        string    `gorm:"size:50" json:"language"`
	Description     string    `gorm:"type:text" json:"description"`
	ThumbnailURL    string    `gorm:"size:512" json:"thumbnail_url"`
	VideoURL        string    `gorm:"size:512" json:"video_url"`
	StorageSizeMB   float64   `json:"storage_size_mb"`
	UploadDate      time.Time `json:"upload_date"`
}
