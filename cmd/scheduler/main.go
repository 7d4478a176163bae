package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ottlabs/ott-platform/internal/config"
	"github.com/ottlabs/ott-platform/internal/database"
	"github.com/ottlabs/ott-platform/internal/logging"
	"github.com/ottlabs/ott-platform/internal/mail"
	"github.com/ottlabs/ott-platform/internal/scheduler"
	"github.com/ottlabs/ott-platform/internal/services"
)

// Standalone notification scheduler. It can run next to the server process:
// the notifier's conditional claim update keeps overlapping runs from
// double-notifying a user.
func main() {
	logging.Setup()

	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	mailer := mail.FromConfig(cfg)
	notificationService := services.NewNotificationService(db, mailer, cfg.InactiveThresholdDays, cfg.NotifyDelay)

	done := make(chan struct{})
	scheduler.Start(notificationService, cfg.JobInterval, done)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down scheduler...")
	close(done)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}
	slog.Info("scheduler stopped")
}
