package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/dto"
	"github.com/ottlabs/ott-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMovieBroadcastsToAllUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	u1 := seedUser(t, db, "viewer1", daysAgo(1), false)
	u2 := seedUser(t, db, "viewer2", daysAgo(2), false)

	movie, notified, err := svc.AddMovie(&dto.CreateMovieRequest{
		Title:           "Interstellar",
		Genre:           "Sci-Fi",
		ReleaseYear:     2014,
		DurationMinutes: 169,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, notified)
	assert.Equal(t, "Interstellar", movie.Title)

	for _, u := range []models.User{u1, u2} {
		var n models.Notification
		require.NoError(t, db.First(&n, "user_id = ? AND type = ?", u.ID, models.NotificationNewContent).Error)
		assert.Contains(t, n.Message, "Interstellar")
		assert.False(t, n.Read)
	}
}

func TestAddMovieRequiresTitle(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, _, err := svc.AddMovie(&dto.CreateMovieRequest{Genre: "Drama"})
	assert.Error(t, err)

	var count int64
	db.Model(&models.Movie{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestListAndGetMovies(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	movie, _, err := svc.AddMovie(&dto.CreateMovieRequest{Title: "Heat"})
	require.NoError(t, err)

	movies, total, err := svc.ListMovies(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, movies, 1)

	got, err := svc.GetMovie(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.Title)

	_, err = svc.GetMovie(uuid.New())
	assert.ErrorIs(t, err, ErrMovieNotFound)
}
