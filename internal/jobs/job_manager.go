package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds the job schedules. Empty values use the defaults.
type Config struct {
	PricingHealthSchedule     string
	QuoteSessionSweepSchedule string
	QuoteSessionTTL           time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	pricingHealthJob     *PricingHealthJob
	quoteSessionSweepJob *QuoteSessionSweepJob
}

func NewJobManager(checker HealthChecker, sweeper SessionSweeper, cfg Config, logger *slog.Logger) *JobManager {
	return &JobManager{
		pricingHealthJob:     NewPricingHealthJob(checker, cfg.PricingHealthSchedule, logger),
		quoteSessionSweepJob: NewQuoteSessionSweepJob(sweeper, cfg.QuoteSessionTTL, cfg.QuoteSessionSweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pricingHealthJob.Start(); err != nil {
		return fmt.Errorf("failed to start pricing health job: %w", err)
	}

	if err := jm.quoteSessionSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.pricingHealthJob.Stop()
		return fmt.Errorf("failed to start quote session sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.quoteSessionSweepJob.Stop()
	jm.pricingHealthJob.Stop()
}
