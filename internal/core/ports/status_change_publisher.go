package ports

import (
	"context"

	"printshop/internal/core/domain/model/order"
)

// StatusChangePublisher announces durable order status changes to other systems.
type StatusChangePublisher interface {
	PublishStatusChanged(ctx context.Context, orderID string, change order.StatusChange) error
}
