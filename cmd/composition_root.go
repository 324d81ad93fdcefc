package cmd

import (
	"log/slog"
	"sync"

	httpapi "printshop/internal/adapters/in/http"
	"printshop/internal/adapters/out/backend"
	"printshop/internal/adapters/out/kafka"
	"printshop/internal/adapters/out/pricingapi"
	"printshop/internal/core/application/quoting"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/jobs"
	"printshop/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// CompositionRoot builds the service's object graph from Config. Shared
// components are created once and reused by every factory method.
type CompositionRoot struct {
	cfg     Config
	clock   kernel.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics

	pricing   ports.PricingService
	publisher *kafka.Publisher

	healthOnce sync.Once
	health     *quoting.HealthMonitor

	sessionsOnce sync.Once
	sessions     *quoting.Registry
}

// NewCompositionRoot connects the outbound adapters. Without PRICING_API_URL
// every quote comes from the fallback table; without KAFKA_HOST status
// change events are not published.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:     cfg,
		clock:   kernel.SystemClock{},
		logger:  logger,
		metrics: metrics.New(),
	}

	if cfg.PricingAPIURL != "" {
		client, err := pricingapi.NewClient(cfg.PricingAPIURL, cfg.PricingTimeout, logger)
		if err != nil {
			return nil, err
		}
		c.pricing = client
	} else {
		logger.Warn("PRICING_API_URL is not set, quotes will use fallback pricing")
	}

	c.publisher = kafka.NewPublisher(cfg.KafkaHost, cfg.KafkaOrderChangedTopic, c.clock, logger)
	if !c.publisher.Enabled() {
		logger.Info("KAFKA_HOST is not set, status change events are disabled")
	}
	return c, nil
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreateCalculatePricingQueryHandler() queries.CalculatePricingQueryHandler {
	return queries.NewCalculatePricingQueryHandler(c.pricing, services.NewFallbackPricer(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateOrderBackend() (*backend.Client, error) {
	return backend.NewClient(c.cfg.OrderBackendURL, c.cfg.OrderBackendTimeout, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler(b ports.OrderBackend) queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(b)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler(
	b ports.OrderBackend,
) *commands.ChangeOrderStatusCommandHandler {
	engine := services.NewWorkflowEngine(c.clock, services.AllowAll)
	return commands.NewChangeOrderStatusCommandHandler(b, engine, c.publisher, c.metrics, c.logger)
}

func (c *CompositionRoot) HealthMonitor() *quoting.HealthMonitor {
	c.healthOnce.Do(func() {
		var checker quoting.HealthChecker
		if c.pricing != nil {
			checker = c.pricing
		}
		c.health = quoting.NewHealthMonitor(checker, c.clock, c.metrics, c.logger)
	})
	return c.health
}

func (c *CompositionRoot) QuoteSessions() *quoting.Registry {
	c.sessionsOnce.Do(func() {
		c.sessions = quoting.NewRegistry(c.CreateCalculatePricingQueryHandler(), c.cfg.PricingDebounceWindow,
			c.clock, c.metrics, c.logger)
	})
	return c.sessions
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.HealthMonitor(), c.QuoteSessions(), jobs.Config{
		PricingHealthSchedule: c.cfg.PricingHealthSchedule,
		QuoteSessionTTL:       c.cfg.QuoteSessionTTL,
	}, c.logger)
}

// CreateHTTPServer wires every handler into the echo router. It fails when
// ORDER_BACKEND_URL is missing.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	b, err := c.CreateOrderBackend()
	if err != nil {
		return nil, err
	}

	server, err := httpapi.NewServer(httpapi.Handlers{
		Pricing:       c.CreateCalculatePricingQueryHandler(),
		Sessions:      c.QuoteSessions(),
		Health:        c.HealthMonitor(),
		Orders:        c.CreateGetOrderQueryHandler(b),
		StatusChanges: c.CreateChangeOrderStatusCommandHandler(b),
	}, c.cfg.AuthDefaultActor, c.logger)
	if err != nil {
		return nil, err
	}

	e := httpapi.NewRouter(server, c.metrics, c.logger)
	e.Logger.SetLevel(c.cfg.EchoLogLevel())
	return e, nil
}

// Close releases open quote sessions and the Kafka writer.
func (c *CompositionRoot) Close() error {
	if c.sessions != nil {
		c.sessions.Close()
	}
	return c.publisher.Close()
}
