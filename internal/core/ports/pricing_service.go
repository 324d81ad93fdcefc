package ports

import (
	"context"

	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/pricing"
)

// PricingService is the remote decoration pricing engine.
type PricingService interface {
	// Calculate prices a canonical request. Failures are reported as
	// *errs.TransportError.
	Calculate(ctx context.Context, req decoration.CanonicalRequest) (pricing.Result, error)

	// Health returns nil when the service reports itself available.
	Health(ctx context.Context) error
}
