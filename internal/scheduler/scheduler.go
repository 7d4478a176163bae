package scheduler

import (
	"log/slog"
	"time"

	"github.com/ottlabs/ott-platform/internal/services"
)

// JobRunner is the single operation the scheduler drives.
type JobRunner interface {
	RunJob() services.JobResult
}

// Start runs the notification job once immediately, then on a fixed
// wall-clock interval until done is closed. The interval anchors to process
// start, not to a calendar boundary; a run in progress is never cancelled
// mid-batch.
func Start(runner JobRunner, interval time.Duration, done chan struct{}) {
	go func() {
		slog.Info("notification scheduler started", "interval", interval.String())
		run(runner)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				run(runner)
			case <-done:
				slog.Info("notification scheduler stopped")
				return
			}
		}
	}()
}

func run(runner JobRunner) {
	result := runner.RunJob()
	if !result.Success {
		slog.Error("scheduled notification job failed", "job", "inactivity", "error", result.Error)
		return
	}
	slog.Info("scheduled notification job finished", "job", "inactivity",
		"total", result.Total, "sent", result.Sent, "failed", result.Failed)
}
