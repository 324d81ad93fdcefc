package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/pricing"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

// QuoteRecorder receives one observation per produced quote.
type QuoteRecorder interface {
	ObserveQuote(source string, d time.Duration)
}

type nopQuoteRecorder struct{}

func (nopQuoteRecorder) ObserveQuote(string, time.Duration) {}

// CalculatePricingQueryHandler prices decoration requests with the remote
// pricing service and falls back to the local rate table on any failure.
// It never returns a pricing failure to the caller.
//
// Example:
//
//	handler := NewCalculatePricingQueryHandler(client, services.NewFallbackPricer(), m, logger)
//	result, err := handler.Handle(ctx, query)
//	// err != nil only for a query that was not built by its constructor
//	if result.Source == pricing.SourceFallback {
//	    // show "using fallback pricing"
//	}
type CalculatePricingQueryHandler struct {
	service  ports.PricingService
	fallback services.FallbackPricer
	recorder QuoteRecorder
	logger   *slog.Logger
}

// NewCalculatePricingQueryHandler creates the handler. A nil recorder disables
// metrics.
func NewCalculatePricingQueryHandler(
	service ports.PricingService,
	fallback services.FallbackPricer,
	recorder QuoteRecorder,
	logger *slog.Logger,
) CalculatePricingQueryHandler {
	if recorder == nil {
		recorder = nopQuoteRecorder{}
	}
	return CalculatePricingQueryHandler{
		service:  service,
		fallback: fallback,
		recorder: recorder,
		logger:   logger.With("component", "calculate_pricing_query_handler"),
	}
}

// Handle prices the request. No retries are made: one failed remote attempt
// goes straight to the fallback table.
func (h CalculatePricingQueryHandler) Handle(ctx context.Context, query CalculatePricingQuery) (pricing.Result, error) {
	if err := query.Validate(); err != nil {
		return pricing.Result{}, err
	}

	start := time.Now()
	req := query.Request()

	if !decoration.IsKnownMethod(req.MethodInput()) {
		h.logger.DebugContext(ctx, "Unknown decoration method, pricing as default",
			"method", req.MethodInput(), "default", decoration.DefaultMethod)
	}

	result, err := h.remote(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "Pricing service unavailable, using fallback rate table",
			"method", req.Method(), "quantity", req.Quantity(), "error", err)
		result = h.fallback.Quote(req)
	}

	h.recorder.ObserveQuote(string(result.Source), time.Since(start))
	return result, nil
}

func (h CalculatePricingQueryHandler) remote(ctx context.Context, req decoration.Request) (pricing.Result, error) {
	if h.service == nil {
		return pricing.Result{}, errs.NewNetworkError("pricing", fmt.Errorf("no pricing service configured"))
	}

	result, err := h.service.Calculate(ctx, req.Canonical())
	if err != nil {
		return pricing.Result{}, err
	}

	result.UnitPrice = pricing.UnitPriceOf(result.TotalPrice, req.Quantity())
	result.Source = pricing.SourceRemote
	if err = result.Validate(); err != nil {
		return pricing.Result{}, errs.NewInvalidResponseError("pricing", err)
	}
	return result, nil
}
