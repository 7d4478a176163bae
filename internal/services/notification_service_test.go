package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindInactiveUsers(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewNotificationService(db, mailer, 90, 0)

	overdue := seedUser(t, db, "overdue", daysAgo(95), false)
	mostOverdue := seedUser(t, db, "most_overdue", daysAgo(120), false)
	seedUser(t, db, "already_notified", daysAgo(100), true)
	seedUser(t, db, "recent", daysAgo(10), false)

	inactive := seedUser(t, db, "deactivated", daysAgo(200), false)
	require.NoError(t, db.Model(&models.UserActivity{}).
		Where("user_id = ?", inactive.ID).
		Update("active", false).Error)

	users, err := svc.FindInactiveUsers(90)
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Oldest last_login first
	assert.Equal(t, mostOverdue.ID, users[0].UserID)
	assert.Equal(t, overdue.ID, users[1].UserID)
	assert.GreaterOrEqual(t, users[0].DaysInactive, 120)
	assert.Equal(t, "overdue@example.com", users[1].Email)
}

func TestNotifyCreatesRowAndClaimsUser(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewNotificationService(db, mailer, 90, 0)

	user := seedUser(t, db, "sleepy", daysAgo(95), false)

	users, err := svc.FindInactiveUsers(90)
	require.NoError(t, err)
	require.Len(t, users, 1)

	res := svc.Notify(users[0])
	assert.True(t, res.Success)
	assert.False(t, res.Skipped)
	assert.NoError(t, res.MailErr)

	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", user.ID, models.NotificationInactiveWarning).
		Count(&count)
	assert.EqualValues(t, 1, count)

	var activity models.UserActivity
	require.NoError(t, db.First(&activity, "user_id = ?", user.ID).Error)
	assert.True(t, activity.Notified)
	require.NotNil(t, activity.NotifiedAt)

	// A single pass is idempotent: the detector must not return the user again.
	again, err := svc.FindInactiveUsers(90)
	require.NoError(t, err)
	assert.Empty(t, again)

	assert.Equal(t, []string{"sleepy@example.com"}, mailer.sent)
}

func TestNotifySkipsAlreadyClaimedUser(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewNotificationService(db, mailer, 90, 0)

	user := seedUser(t, db, "claimed", daysAgo(95), true)

	res := svc.Notify(InactiveUser{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		LastLogin:    daysAgo(95),
		DaysInactive: 95,
	})
	assert.True(t, res.Success)
	assert.True(t, res.Skipped)

	// The pending Notification insert must roll back with the failed claim.
	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	assert.Empty(t, mailer.sent)
}

func TestNotifyRollsBackWhenClaimCannotApply(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewNotificationService(db, mailer, 90, 0)

	// A user whose activity row is gone mid-run: the flag update affects
	// zero rows, so the notification insert must not survive either.
	user := seedUser(t, db, "ghost", daysAgo(95), false)
	require.NoError(t, db.Where("user_id = ?", user.ID).Delete(&models.UserActivity{}).Error)

	res := svc.Notify(InactiveUser{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		LastLogin:    daysAgo(95),
		DaysInactive: 95,
	})
	assert.True(t, res.Skipped)

	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestRunJobEndToEnd(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewNotificationService(db, mailer, 90, 0)

	user := seedUser(t, db, "dormant", daysAgo(95), false)

	result := svc.RunJob()
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 0, result.Failed)

	var notification models.Notification
	require.NoError(t, db.First(&notification, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.NotificationInactiveWarning, notification.Type)
	assert.Contains(t, notification.Message, "dormant")

	var activity models.UserActivity
	require.NoError(t, db.First(&activity, "user_id = ?", user.ID).Error)
	assert.True(t, activity.Notified)
}

func TestRunJobNoEligibleUsers(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewNotificationService(db, mailer, 90, 0)

	user := seedUser(t, db, "done", daysAgo(95), true)

	result := svc.RunJob()
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Sent)

	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestRunJobMailFailureDoesNotCountAsFailed(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{failTo: map[string]bool{"unlucky@example.com": true}}
	svc := NewNotificationService(db, mailer, 90, 0)

	lucky := seedUser(t, db, "lucky", daysAgo(120), false)
	unlucky := seedUser(t, db, "unlucky", daysAgo(95), false)

	result := svc.RunJob()
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 0, result.Failed)

	// Both in-app writes succeeded regardless of the mail outcome.
	for _, u := range []uuid.UUID{lucky.ID, unlucky.ID} {
		var activity models.UserActivity
		require.NoError(t, db.First(&activity, "user_id = ?", u).Error)
		assert.True(t, activity.Notified)
	}

	// Only the deliverable address actually went out, oldest login first.
	assert.Equal(t, []string{"lucky@example.com"}, mailer.sent)
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewNotificationService(db, mailer, 90, 0)

	user := seedUser(t, db, "leaving", daysAgo(95), false)
	bystander := seedUser(t, db, "staying", daysAgo(5), false)

	movie := models.Movie{ID: uuid.New(), Title: "Some Film", UploadDate: time.Now()}
	require.NoError(t, db.Create(&movie).Error)
	require.NoError(t, db.Create(&models.WatchHistory{
		ID: uuid.New(), UserID: user.ID, MovieID: movie.ID, WatchedAt: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.Notification{
		ID: uuid.New(), UserID: user.ID, Type: models.NotificationNewContent,
		Title: "t", Message: "m", SentAt: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.StorageAnalytics{
		ID: uuid.New(), UserID: user.ID, LastCalculated: time.Now(),
	}).Error)

	deleted, err := svc.DeleteUser(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	for _, model := range []interface{}{
		&models.UserActivity{}, &models.WatchHistory{},
		&models.Notification{}, &models.StorageAnalytics{},
	} {
		var count int64
		db.Model(model).Where("user_id = ?", user.ID).Count(&count)
		assert.EqualValues(t, 0, count, "%T rows should cascade", model)
	}

	// Unrelated rows survive.
	var movieCount, userCount int64
	db.Model(&models.Movie{}).Count(&movieCount)
	db.Model(&models.User{}).Where("id = ?", bystander.ID).Count(&userCount)
	assert.EqualValues(t, 1, movieCount)
	assert.EqualValues(t, 1, userCount)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, &recordingMailer{}, 90, 0)

	_, err := svc.DeleteUser(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
