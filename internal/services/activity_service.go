package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/models"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// RecordWatch appends a watch-history row and advances last_watch. The
// history append and the activity update share one transaction so a partial
// write cannot leave them inconsistent.
func (s *ActivityService) RecordWatch(userID, movieID uuid.UUID) (*models.WatchHistory, error) {
	var movie models.Movie
	if err := s.db.Select("id").First(&movie, "id = ?", movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to check movie: %w", err)
	}

	now := time.Now()
	entry := models.WatchHistory{
		ID:        uuid.New(),
		UserID:    userID,
		MovieID:   movieID,
		WatchedAt: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to record watch: %w", err)
		}
		return tx.Model(&models.UserActivity{}).
			Where("user_id = ?", userID).
			Update("last_watch", now).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *ActivityService) ListWatchHistory(userID uuid.UUID, limit int) ([]models.WatchHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var history []models.WatchHistory
	err := s.db.Where("user_id = ?", userID).
		Order("watched_at DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list watch history: %w", err)
	}
	return history, nil
}

func (s *ActivityService) ListNotifications(userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flips the read flag, the only mutation a notification
// row ever sees.
func (s *ActivityService) MarkNotificationRead(userID, notificationID uuid.UUID) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *ActivityService) GetStorageAnalytics(userID uuid.UUID) (*models.StorageAnalytics, error) {
	var analytics models.StorageAnalytics
	if err := s.db.First(&analytics, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load storage analytics: %w", err)
	}
	return &analytics, nil
}
