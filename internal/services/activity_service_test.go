package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWatchAppendsHistoryAndAdvancesLastWatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)

	user := seedUser(t, db, "watcher", daysAgo(1), false)
	movie := models.Movie{ID: uuid.New(), Title: "Ran", UploadDate: time.Now()}
	require.NoError(t, db.Create(&movie).Error)

	entry, err := svc.RecordWatch(user.ID, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, movie.ID, entry.MovieID)
	assert.False(t, entry.Completed)

	var activity models.UserActivity
	require.NoError(t, db.First(&activity, "user_id = ?", user.ID).Error)
	require.NotNil(t, activity.LastWatch)
	assert.WithinDuration(t, time.Now(), *activity.LastWatch, time.Minute)

	history, err := svc.ListWatchHistory(user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRecordWatchUnknownMovie(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)

	user := seedUser(t, db, "watcher", daysAgo(1), false)

	_, err := svc.RecordWatch(user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrMovieNotFound)

	var count int64
	db.Model(&models.WatchHistory{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestMarkNotificationRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)

	user := seedUser(t, db, "reader", daysAgo(1), false)
	other := seedUser(t, db, "other", daysAgo(1), false)

	notification := models.Notification{
		ID: uuid.New(), UserID: user.ID, Type: models.NotificationNewContent,
		Title: "t", Message: "m", SentAt: time.Now(),
	}
	require.NoError(t, db.Create(&notification).Error)

	// Another user cannot flip someone else's notification.
	err := svc.MarkNotificationRead(other.ID, notification.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, svc.MarkNotificationRead(user.ID, notification.ID))

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, "id = ?", notification.ID).Error)
	assert.True(t, reloaded.Read)
}

func TestListNotificationsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)

	user := seedUser(t, db, "busy", daysAgo(1), false)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Notification{
			ID: uuid.New(), UserID: user.ID, Type: models.NotificationNewContent,
			Title: "t", Message: "m", SentAt: time.Now().Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	notifications, err := svc.ListNotifications(user.ID, 2)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.True(t, notifications[0].SentAt.After(notifications[1].SentAt))
}

func TestGetStorageAnalytics(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)

	user := seedUser(t, db, "hoarder", daysAgo(1), false)
	require.NoError(t, db.Create(&models.StorageAnalytics{
		ID: uuid.New(), UserID: user.ID, TotalMoviesWatched: 7,
		TotalStorageUsedMB: 1234.5, LastCalculated: time.Now(),
	}).Error)

	analytics, err := svc.GetStorageAnalytics(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, analytics.TotalMoviesWatched)

	_, err = svc.GetStorageAnalytics(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
