package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/mail"
	"github.com/ottlabs/ott-platform/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyNotified means another run claimed the user between detection
	// and notification. The transaction rolls back and the user is skipped.
	ErrAlreadyNotified = errors.New("user already notified")
)

// InactiveUser is one detected user joined with their activity record.
type InactiveUser struct {
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	LastLogin    time.Time `json:"last_login"`
	DaysInactive int       `json:"days_inactive" gorm:"-"`
}

// NotifyResult is the per-user outcome of a notification attempt.
type NotifyResult struct {
	Success bool      `json:"success"`
	Skipped bool      `json:"skipped,omitempty"`
	UserID  uuid.UUID `json:"user_id"`
	Err     error     `json:"-"`
	MailErr error     `json:"-"`
}

// JobResult summarizes one end-to-end notification run.
type JobResult struct {
	Success bool   `json:"success"`
	Total   int    `json:"total"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

type NotificationService struct {
	db            *gorm.DB
	mailer        mail.Mailer
	thresholdDays int
	notifyDelay   time.Duration
}

func NewNotificationService(db *gorm.DB, mailer mail.Mailer, thresholdDays int, notifyDelay time.Duration) *NotificationService {
	if thresholdDays <= 0 {
		thresholdDays = 90
	}
	return &NotificationService{
		db:            db,
		mailer:        mailer,
		thresholdDays: thresholdDays,
		notifyDelay:   notifyDelay,
	}
}

// FindInactiveUsers returns active, not-yet-notified users whose last login
// is at least thresholdDays ago, oldest login first. Pure read.
func (s *NotificationService) FindInactiveUsers(thresholdDays int) ([]InactiveUser, error) {
	cutoff := time.Now().AddDate(0, 0, -thresholdDays)

	var rows []InactiveUser
	err := s.db.Model(&models.UserActivity{}).
		Select("user_activities.user_id, users.username, users.email, user_activities.last_login").
		Joins("JOIN users ON users.id = user_activities.user_id").
		Where("user_activities.active = ? AND user_activities.notified = ? AND user_activities.last_login <= ?",
			true, false, cutoff).
		Order("user_activities.last_login ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query inactive users: %w", err)
	}

	for i := range rows {
		rows[i].DaysInactive = int(time.Since(rows[i].LastLogin).Hours() / 24)
	}
	return rows, nil
}

// Notify records an inactivity warning for one user. The notification insert
// and the notified-flag update run in one transaction; the update is
// conditional on notified still being false, so overlapping runs cannot
// double-process a user. Email goes out after commit and is best-effort.
func (s *NotificationService) Notify(u InactiveUser) NotifyResult {
	title := "Your OTT account is inactive"
	message := fmt.Sprintf(
		"Hi %s,\n\nWe noticed you haven't logged in for %d days (since %s).\n\n"+
			"Your account is taking up storage space. If you're no longer using the platform, "+
			"we recommend deleting your account to free up resources.\n\n"+
			"Log in to continue watching, or delete your account to free storage. "+
			"If you don't take action within 30 days, your account may be automatically deleted.",
		u.Username, u.DaysInactive, u.LastLogin.Format("Jan 2, 2006"))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		notification := models.Notification{
			ID:      uuid.New(),
			UserID:  u.UserID,
			Type:    models.NotificationInactiveWarning,
			Title:   title,
			Message: message,
			SentAt:  time.Now(),
		}
		if err := tx.Create(&notification).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		now := time.Now()
		res := tx.Model(&models.UserActivity{}).
			Where("user_id = ? AND notified = ?", u.UserID, false).
			Updates(map[string]interface{}{"notified": true, "notified_at": now})
		if res.Error != nil {
			return fmt.Errorf("failed to mark user notified: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyNotified
		}
		return nil
	})

	if errors.Is(err, ErrAlreadyNotified) {
		slog.Info("user already claimed by a concurrent run, skipping",
			"user_id", u.UserID.String(), "username", u.Username)
		return NotifyResult{Success: true, Skipped: true, UserID: u.UserID}
	}
	if err != nil {
		slog.Error("failed to notify inactive user",
			"user_id", u.UserID.String(), "username", u.Username, "error", err)
		return NotifyResult{UserID: u.UserID, Err: err}
	}

	// The notification row and the flag are the system of record; the email
	// is advisory. A dispatch failure is logged but never rolls anything back.
	html := mail.InactiveWarningHTML(u.Username, u.DaysInactive, u.LastLogin.Format("Jan 2, 2006"))
	if mailErr := s.mailer.Send(u.Email, title, message, html); mailErr != nil {
		slog.Error("inactivity email dispatch failed",
			"user_id", u.UserID.String(), "username", u.Username, "error", mailErr)
		return NotifyResult{Success: true, UserID: u.UserID, MailErr: mailErr}
	}

	slog.Info("inactivity warning sent", "user_id", u.UserID.String(), "username", u.Username)
	return NotifyResult{Success: true, UserID: u.UserID}
}

// RunJob performs one detection-and-notification pass. Users are processed
// sequentially with a fixed delay between dispatches; a per-user failure is
// counted and the batch continues. Only a detection failure fails the job.
func (s *NotificationService) RunJob() JobResult {
	start := time.Now()
	slog.Info("starting inactive user notification job", "job", "inactivity")

	users, err := s.FindInactiveUsers(s.thresholdDays)
	if err != nil {
		slog.Error("notification job failed", "job", "inactivity", "error", err)
		return JobResult{Error: err.Error()}
	}

	if len(users) == 0 {
		slog.Info("no inactive users found", "job", "inactivity")
		return JobResult{Success: true}
	}

	slog.Info("found inactive users", "job", "inactivity", "count", len(users))

	result := JobResult{Success: true, Total: len(users)}
	for i, u := range users {
		if i > 0 && s.notifyDelay > 0 {
			time.Sleep(s.notifyDelay)
		}
		switch r := s.Notify(u); {
		case r.Skipped:
			result.Skipped++
		case r.Success:
			result.Sent++
		default:
			result.Failed++
		}
	}

	slog.Info("notification job completed", "job", "inactivity",
		"duration_ms", time.Since(start).Milliseconds(),
		"sent", result.Sent, "failed", result.Failed, "skipped", result.Skipped)
	return result
}

// DeleteUser removes a user and, through the cascading foreign keys, all of
// their activity, history, notifications, subscriptions and analytics. The
// whole cascade commits or rolls back as one transaction.
func (s *NotificationService) DeleteUser(userID uuid.UUID) (int64, error) {
	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", userID).Delete(&models.User{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		slog.Error("failed to delete user", "user_id", userID.String(), "error", err)
		return 0, err
	}
	slog.Info("user and all related data deleted", "user_id", userID.String())
	return deleted, nil
}
