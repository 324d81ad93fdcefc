package queries

import (
	"context"
	"fmt"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/ports"
)

// GetOrderQueryHandler returns the canonical view of a backend order.
type GetOrderQueryHandler struct {
	backend ports.OrderBackend
}

func NewGetOrderQueryHandler(backend ports.OrderBackend) GetOrderQueryHandler {
	return GetOrderQueryHandler{backend: backend}
}

// Handle fetches the order. Not-found and transport errors keep their
// errs kinds so callers can match them with errors.Is.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.backend.GetOrder(ctx, query.OrderID())
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", query.OrderID(), err)
	}
	return o, nil
}
