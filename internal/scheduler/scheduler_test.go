package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/ottlabs/ott-platform/internal/services"
	"github.com/stretchr/testify/assert"
)

type countingRunner struct {
	runs atomic.Int32
}

func (r *countingRunner) RunJob() services.JobResult {
	r.runs.Add(1)
	return services.JobResult{Success: true}
}

func TestStartRunsImmediatelyThenOnInterval(t *testing.T) {
	runner := &countingRunner{}
	done := make(chan struct{})

	Start(runner, 25*time.Millisecond, done)

	// One immediate run plus at least one tick.
	assert.Eventually(t, func() bool {
		return runner.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	close(done)
	settled := runner.runs.Load()
	time.Sleep(60 * time.Millisecond)
	assert.LessOrEqual(t, runner.runs.Load(), settled+1, "no further runs after stop")
}

func TestStartReportsFailedJob(t *testing.T) {
	runner := &failingRunner{}
	done := make(chan struct{})
	defer close(done)

	Start(runner, time.Hour, done)

	assert.Eventually(t, func() bool {
		return runner.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

type failingRunner struct {
	runs atomic.Int32
}

func (r *failingRunner) RunJob() services.JobResult {
	r.runs.Add(1)
	return services.JobResult{Error: "detection query failed"}
}
