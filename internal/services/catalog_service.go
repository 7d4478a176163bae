package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/dto"
	"github.com/ottlabs/ott-platform/internal/models"
	"gorm.io/gorm"
)

var ErrMovieNotFound = errors.New("movie not found")

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListMovies(limit, offset int) ([]models.Movie, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var movies []models.Movie
	var total int64

	s.db.Model(&models.Movie{}).Count(&total)

	err := s.db.Order("upload_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&movies).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, total, nil
}

func (s *CatalogService) GetMovie(id uuid.UUID) (*models.Movie, error) {
	var movie models.Movie
	if err := s.db.First(&movie, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to load movie: %w", err)
	}
	return &movie, nil
}

// AddMovie inserts a new title and broadcasts a NEW_CONTENT notification to
// every user. The broadcast count is returned so the admin response can
// report it.
func (s *CatalogService) AddMovie(req *dto.CreateMovieRequest) (*models.Movie, int, error) {
	if req.Title == "" {
		return nil, 0, errors.New("title is required")
	}

	movie := models.Movie{
		ID:              uuid.New(),
		Title:           req.Title,
		Genre:           req.Genre,
		Director:        req.Director,
		Cast:            req.Cast,
		ReleaseYear:     req.ReleaseYear,
		Rating:          req.Rating,
		DurationMinutes: req.DurationMinutes,
		Language:        req.Language,
		Description:     req.Description,
		ThumbnailURL:    req.ThumbnailURL,
		VideoURL:        req.VideoURL,
		StorageSizeMB:   req.StorageSizeMB,
		UploadDate:      time.Now(),
	}

	if err := s.db.Create(&movie).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to create movie: %w", err)
	}

	var users []models.User
	if err := s.db.Select("id").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to load users for broadcast: %w", err)
	}

	if len(users) > 0 {
		title := "New movie added"
		message := fmt.Sprintf("Check out our latest addition: %q (%s). Watch it now!", movie.Title, movie.Genre)
		now := time.Now()

		notifications := make([]models.Notification, len(users))
		for i, u := range users {
			notifications[i] = models.Notification{
				ID:      uuid.New(),
				UserID:  u.ID,
				Type:    models.NotificationNewContent,
				Title:   title,
				Message: message,
				SentAt:  now,
			}
		}
		if err := s.db.CreateInBatches(notifications, 100).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to broadcast notifications: %w", err)
		}
	}

	slog.Info("movie added", "title", movie.Title, "notifications_sent", len(users))
	return &movie, len(users), nil
}
