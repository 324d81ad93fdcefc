package jobs

import (
	"context"
	"log/slog"

	"printshop/internal/core/application/quoting"

	"github.com/robfig/cron/v3"
)

// DefaultPricingHealthSchedule checks the pricing service every 30 seconds.
const DefaultPricingHealthSchedule = "*/30 * * * * *"

// HealthChecker refreshes the cached pricing service health.
type HealthChecker interface {
	Check(ctx context.Context) quoting.Health
}

// PricingHealthJob keeps the pricing health flag fresh so the UI can show
// whether quotes come from the fallback table.
type PricingHealthJob struct {
	checker  HealthChecker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPricingHealthJob(checker HealthChecker, schedule string, logger *slog.Logger) *PricingHealthJob {
	if schedule == "" {
		schedule = DefaultPricingHealthSchedule
	}
	return &PricingHealthJob{
		checker:  checker,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pricing_health_job"),
	}
}

// Start checks once right away, then on every tick of the schedule.
func (j *PricingHealthJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.Run(context.Background())
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pricing health job started", "schedule", j.schedule)
	return nil
}

func (j *PricingHealthJob) Run(ctx context.Context) {
	h := j.checker.Check(ctx)
	j.logger.DebugContext(ctx, "Pricing service checked", "healthy", h.Healthy)
}

// Stop waits for a running check to finish.
func (j *PricingHealthJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pricing health job stopped")
}
