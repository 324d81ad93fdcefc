package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultQuoteSessionSweepSchedule = "0 * * * * *"
	DefaultQuoteSessionTTL           = 15 * time.Minute
)

type SessionSweeper interface {
	EvictIdle(ttl time.Duration) int
}

// QuoteSessionSweepJob closes quote sessions nobody submitted to within ttl.
type QuoteSessionSweepJob struct {
	sweeper  SessionSweeper
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewQuoteSessionSweepJob(sweeper SessionSweeper, ttl time.Duration, schedule string, logger *slog.Logger) *QuoteSessionSweepJob {
	if ttl <= 0 {
		ttl = DefaultQuoteSessionTTL
	}
	if schedule == "" {
		schedule = DefaultQuoteSessionSweepSchedule
	}
	return &QuoteSessionSweepJob{
		sweeper:  sweeper,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "quote_session_sweep_job"),
	}
}

func (j *QuoteSessionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote session sweep job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

func (j *QuoteSessionSweepJob) Run(ctx context.Context) int {
	n := j.sweeper.EvictIdle(j.ttl)
	if n > 0 {
		j.logger.InfoContext(ctx, "Closed idle quote sessions", "count", n)
	}
	return n
}

func (j *QuoteSessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Quote session sweep job stopped")
}
