package dto

import "github.com/ottlabs/ott-platform/internal/models"

type CreateMovieRequest struct {
	Title           string  `json:"title"`
	Genre           string  `json:"genre"`
	Director        string  `json:"director"`
	Cast            string  `json:"cast"`
	ReleaseYear     int     `json:"release_year"`
	Rating          float64 `json:"rating"`
	DurationMinutes int     `json:"duration_minutes"`
	Language        string  `json:"language"`
	Description     string  `json:"description"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	VideoURL        string  `json:"video_url"`
	StorageSizeMB   float64 `json:"storage_size_mb"`
}

type CreateMovieResponse struct {
	Success           bool         `json:"success"`
	Movie             models.Movie `json:"movie"`
	NotificationsSent int          `json:"notifications_sent"`
}

type MovieListResponse struct {
	Movies []models.Movie `json:"movies"`
	Total  int64          `json:"total"`
}
