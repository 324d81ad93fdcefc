package quoting

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"printshop/internal/core/domain/model/kernel"

	"golang.org/x/sync/singleflight"
)

// HealthChecker is the part of the pricing service the monitor needs.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthGauge receives every health check outcome.
type HealthGauge interface {
	SetPricingHealthy(healthy bool)
}

type nopHealthGauge struct{}

func (nopHealthGauge) SetPricingHealthy(bool) {}

// Health is the outcome of the last pricing service health check.
type Health struct {
	Healthy   bool      `json:"healthy"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

// UsingFallback reports whether quotes are expected to come from the local
// rate table.
func (h Health) UsingFallback() bool {
	return !h.Healthy
}

// HealthMonitor caches the pricing service's health. Concurrent checks share
// one call to the service.
type HealthMonitor struct {
	checker HealthChecker
	clock   kernel.Clock
	gauge   HealthGauge
	logger  *slog.Logger
	group   singleflight.Group

	mu      sync.RWMutex
	current Health
	checked bool
}

func NewHealthMonitor(checker HealthChecker, clock kernel.Clock, gauge HealthGauge, logger *slog.Logger) *HealthMonitor {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if gauge == nil {
		gauge = nopHealthGauge{}
	}
	return &HealthMonitor{
		checker: checker,
		clock:   clock,
		gauge:   gauge,
		logger:  logger.With("component", "pricing_health_monitor"),
	}
}

// Check calls the service and stores the outcome. An unreachable service or
// a non-2xx answer counts as unhealthy; Check itself never fails.
func (m *HealthMonitor) Check(ctx context.Context) Health {
	v, _, _ := m.group.Do("health", func() (any, error) {
		h := Health{Healthy: true, CheckedAt: m.clock.Now()}
		if m.checker == nil {
			h.Healthy = false
			h.Error = "pricing service not configured"
		} else if err := m.checker.Health(ctx); err != nil {
			h.Healthy = false
			h.Error = err.Error()
		}

		m.mu.Lock()
		wasHealthy := m.current.Healthy || !m.checked
		m.current = h
		m.checked = true
		m.mu.Unlock()

		m.gauge.SetPricingHealthy(h.Healthy)
		if wasHealthy && !h.Healthy {
			m.logger.WarnContext(ctx, "Pricing service unhealthy, quotes will use fallback pricing", "error", h.Error)
		} else if !wasHealthy && h.Healthy {
			m.logger.InfoContext(ctx, "Pricing service recovered")
		}
		return h, nil
	})
	return v.(Health)
}

// Current returns the cached outcome, checking once if nothing is cached yet.
func (m *HealthMonitor) Current(ctx context.Context) Health {
	m.mu.RLock()
	h, checked := m.current, m.checked
	m.mu.RUnlock()

	if checked {
		return h
	}
	return m.Check(ctx)
}
