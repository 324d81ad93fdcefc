package commands

import (
	"context"
	"fmt"
	"log/slog"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

// Outcomes reported to the StatusChangeRecorder.
const (
	OutcomeChanged           = "changed"
	OutcomeUnchanged         = "unchanged"
	OutcomeRejected          = "rejected"
	OutcomePersistenceFailed = "persistence_failed"
)

// StatusChangeRecorder receives workflow observations.
type StatusChangeRecorder interface {
	ObserveStatusChange(outcome string)
	ObserveEventFailure()
}

type nopStatusChangeRecorder struct{}

func (nopStatusChangeRecorder) ObserveStatusChange(string) {}
func (nopStatusChangeRecorder) ObserveEventFailure() {}

// ChangeOrderStatusCommandHandler applies status changes to backend orders.
//
// The local change only counts once the backend accepted it: when
// UpdateOrderStatus fails the caller gets the unchanged order back together
// with a *errs.PersistenceError, so any optimistic UI update can be undone.
// Changes to one order are applied one at a time in the order they arrive;
// different orders proceed in parallel.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(backend, engine, publisher, m, logger)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrUnknownStatus):
//	case errors.Is(err, errs.ErrPersistence):
//	    // updated is the order as it was before the change
//	}
type ChangeOrderStatusCommandHandler struct {
	backend   ports.OrderBackend
	engine    services.WorkflowEngine
	publisher ports.StatusChangePublisher
	recorder  StatusChangeRecorder
	locks     *orderLocks
	logger    *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates the handler. publisher and
// recorder may be nil.
func NewChangeOrderStatusCommandHandler(
	backend ports.OrderBackend,
	engine services.WorkflowEngine,
	publisher ports.StatusChangePublisher,
	recorder StatusChangeRecorder,
	logger *slog.Logger,
) *ChangeOrderStatusCommandHandler {
	if recorder == nil {
		recorder = nopStatusChangeRecorder{}
	}
	return &ChangeOrderStatusCommandHandler{
		backend:   backend,
		engine:    engine,
		publisher: publisher,
		recorder:  recorder,
		locks:     newOrderLocks(),
		logger:    logger.With("component", "change_order_status_command_handler"),
	}
}

// Handle reads the current order from the backend and applies cmd to it.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock, err := h.locks.lock(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := h.backend.GetOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	return h.apply(ctx, current, cmd)
}

// Apply applies cmd to an order the caller already holds, such as the one
// on screen. The order's id must match the command.
func (h *ChangeOrderStatusCommandHandler) Apply(
	ctx context.Context,
	current *order.Order,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := current.Validate(); err != nil {
		return nil, err
	}
	if current.ID() != cmd.OrderID() {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("command targets %s, order is %s", cmd.OrderID(), current.ID()))
	}

	unlock, err := h.locks.lock(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	defer unlock()

	return h.apply(ctx, current, cmd)
}

func (h *ChangeOrderStatusCommandHandler) apply(
	ctx context.Context,
	current *order.Order,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	next, changed, err := h.engine.Apply(current, cmd.Status(), cmd.Actor())
	if err != nil {
		h.recorder.ObserveStatusChange(OutcomeRejected)
		return nil, err
	}
	if !changed {
		h.recorder.ObserveStatusChange(OutcomeUnchanged)
		return current, nil
	}

	if err = h.backend.UpdateOrderStatus(ctx, cmd.OrderID(), cmd.Status()); err != nil {
		h.recorder.ObserveStatusChange(OutcomePersistenceFailed)
		h.logger.ErrorContext(ctx, "Order status change was not persisted",
			"order_id", cmd.OrderID(), "from", current.Status(), "to", cmd.Status(), "error", err)
		return current, errs.NewPersistenceErrorWithCause("update order status", cmd.OrderID(), err)
	}

	h.recorder.ObserveStatusChange(OutcomeChanged)
	h.logger.InfoContext(ctx, "Order status changed",
		"order_id", cmd.OrderID(), "from", current.Status(), "to", next.Status(), "actor", cmd.Actor().String())

	h.publish(ctx, next)
	return next, nil
}

func (h *ChangeOrderStatusCommandHandler) publish(ctx context.Context, o *order.Order) {
	if h.publisher == nil {
		return
	}
	history := o.History()
	change := history[len(history)-1]
	if err := h.publisher.PublishStatusChanged(ctx, o.ID(), change); err != nil {
		h.recorder.ObserveEventFailure()
		h.logger.WarnContext(ctx, "Failed to publish status change event", "order_id", o.ID(), "error", err)
	}
}
