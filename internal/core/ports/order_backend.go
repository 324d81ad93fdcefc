package ports

import (
	"context"

	"printshop/internal/core/domain/model/order"
)

// OrderBackend is the remote system of record for orders.
type OrderBackend interface {
	// GetOrder fetches an order and reshapes it into the domain model.
	// Returns an error matching errs.ErrObjectNotFound for an unknown id and
	// errs.ErrNetwork or errs.ErrInvalidResponse for transport failures.
	GetOrder(ctx context.Context, id string) (*order.Order, error)

	// UpdateOrderStatus persists a status change. A nil error means the
	// change is durable.
	UpdateOrderStatus(ctx context.Context, id string, status order.Status) error
}
