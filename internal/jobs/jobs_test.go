package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"printshop/internal/core/application/quoting"
	"printshop/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingChecker struct {
	calls atomic.Int32
}

func (c *countingChecker) Check(context.Context) quoting.Health {
	c.calls.Add(1)
	return quoting.Health{Healthy: true}
}

type MockSweeper struct{ mock.Mock }

func (m *MockSweeper) EvictIdle(ttl time.Duration) int {
	return m.Called(ttl).Int(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPricingHealthJob_ChecksOnStartAndOnSchedule(t *testing.T) {
	checker := &countingChecker{}
	job := jobs.NewPricingHealthJob(checker, "* * * * * *", discardLogger())

	require.NoError(t, job.Start())
	defer job.Stop()

	assert.GreaterOrEqual(t, checker.calls.Load(), int32(1))
	assert.Eventually(t, func() bool { return checker.calls.Load() >= 2 }, 3*time.Second, 20*time.Millisecond)
}

func TestPricingHealthJob_InvalidSchedule(t *testing.T) {
	checker := &countingChecker{}
	job := jobs.NewPricingHealthJob(checker, "every now and then", discardLogger())

	assert.Error(t, job.Start())
	assert.Zero(t, checker.calls.Load())
}

func TestQuoteSessionSweepJob_Run(t *testing.T) {
	sweeper := &MockSweeper{}
	sweeper.On("EvictIdle", 5*time.Minute).Return(3).Once()
	job := jobs.NewQuoteSessionSweepJob(sweeper, 5*time.Minute, "", discardLogger())

	n := job.Run(t.Context())

	assert.Equal(t, 3, n)
	sweeper.AssertExpectations(t)
}

func TestQuoteSessionSweepJob_DefaultTTL(t *testing.T) {
	sweeper := &MockSweeper{}
	sweeper.On("EvictIdle", jobs.DefaultQuoteSessionTTL).Return(0).Once()
	job := jobs.NewQuoteSessionSweepJob(sweeper, 0, "", discardLogger())

	assert.Zero(t, job.Run(t.Context()))
	sweeper.AssertExpectations(t)
}

func TestJobManager_StartAndStop(t *testing.T) {
	checker := &countingChecker{}
	jm := jobs.NewJobManager(checker, &MockSweeper{}, jobs.Config{}, discardLogger())

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.GreaterOrEqual(t, checker.calls.Load(), int32(1))
}

func TestJobManager_StartAllFailure(t *testing.T) {
	checker := &countingChecker{}
	jm := jobs.NewJobManager(checker, &MockSweeper{}, jobs.Config{QuoteSessionSweepSchedule: "bogus"}, discardLogger())

	err := jm.StartAll()

	assert.ErrorContains(t, err, "quote session sweep job")
}
