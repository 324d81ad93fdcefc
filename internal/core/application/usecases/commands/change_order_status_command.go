// Package commands contains operations that change order state in the
// backend. Every command is validated on construction and applied by a
// handler that persists before it reports success.
package commands

import (
	"errors"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand moves one order to a new workflow status.
//
// Example:
//
//	actor, _ := kernel.NewActorID("u1")
//	cmd, err := NewChangeOrderStatusCommand("1042", "SP - In Production", actor)
//	if errors.Is(err, order.ErrUnknownStatus) {
//	    // reject before touching the backend
//	}
//	updated, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID string
	status  order.Status
	actor   kernel.ActorID

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand validates the order id, the status (must be in
// the catalog) and the actor. All failures are returned joined.
func NewChangeOrderStatusCommand(orderID, status string, actor kernel.ActorID) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		actor.Validate(),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	cmd.actor = actor

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() string {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c ChangeOrderStatusCommand) Actor() kernel.ActorID {
	return c.actor
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status string) error {
	s, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}
