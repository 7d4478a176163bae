package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/database"
	"github.com/ottlabs/ott-platform/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a uniquely named shared in-memory SQLite database with
// foreign keys enabled, so the cascade constraints behave like Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// seedUser creates a user plus their activity record with the given last
// login and notified state.
func seedUser(t *testing.T, db *gorm.DB, username string, lastLogin time.Time, notified bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:               uuid.New(),
		Username:         username,
		Email:            username + "@example.com",
		Phone:            fmt.Sprintf("+1%09d", time.Now().UnixNano()%1e9),
		Password:         string(hash),
		SubscriptionTier: models.TierFree,
	}
	require.NoError(t, db.Create(&user).Error)

	activity := models.UserActivity{
		ID:         uuid.New(),
		UserID:     user.ID,
		LastLogin:  lastLogin,
		LoginCount: 1,
		Active:     true,
		Notified:   notified,
	}
	if notified {
		at := lastLogin.AddDate(0, 0, 90)
		activity.NotifiedAt = &at
	}
	require.NoError(t, db.Create(&activity).Error)
	return user
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}

// recordingMailer captures sends and can fail selected recipients.
type recordingMailer struct {
	sent   []string
	failTo map[string]bool
}

func (m *recordingMailer) Send(to, subject, textBody, htmlBody string) error {
	if m.failTo[to] {
		return fmt.Errorf("smtp: mailbox unavailable for %s", to)
	}
	m.sent = append(m.sent, to)
	return nil
}
