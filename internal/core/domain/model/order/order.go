package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is a customer order moving through the production workflow.
//
// Order follows these invariants:
//   - status is a member of the workflow catalog
//   - history is chronological and its last entry ends at status
//   - amountOutstanding = max(totalAmount - amountPaid, 0)
//   - amounts are never negative
//
// The struct uses private fields; every change produces a new Order.
type Order struct {
	id                string
	number            string
	nickname          string
	status            Status
	history           []StatusChange
	totalAmount       kernel.Money
	amountPaid        kernel.Money
	amountOutstanding kernel.Money
	dueDate           *time.Time
	customerDueDate   *time.Time
	createdAt         time.Time
	lineItems         []LineItem
	customer          *CustomerRef
	backendStatus     string

	isConstructed bool
}

// NewOrder creates an order in DefaultStatus with an empty history.
//
// Parameters:
//   - id: backend identifier of the order (required)
//   - number: human-facing order number; defaults to id
//   - createdAt: creation time
//
// Example:
//
//	o, err := order.NewOrder("1042", "", time.Now())
//	// o.Status() == order.DefaultStatus
func NewOrder(id, number string, createdAt time.Time) (*Order, error) {
	return RestoreOrder(RestoreParams{
		ID:        id,
		Number:    number,
		Status:    DefaultStatus,
		CreatedAt: createdAt,
	})
}

// RestoreParams carries an order as read from the backend.
type RestoreParams struct {
	ID              string
	Number          string
	Nickname        string
	Status          Status
	BackendStatus   string
	History         []StatusChange
	TotalAmount     kernel.Money
	AmountPaid      kernel.Money
	DueDate         *time.Time
	CustomerDueDate *time.Time
	CreatedAt       time.Time
	LineItems       []LineItem
	Customer        *CustomerRef
}

// RestoreOrder rebuilds an order from stored data, checking every invariant.
// All validation failures are returned together.
//
// Returns:
//   - *Order: the restored order
//   - error: joined validation errors; an unknown status matches ErrUnknownStatus
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		nickname:        p.Nickname,
		backendStatus:   strings.TrimSpace(p.BackendStatus),
		dueDate:         cloneTime(p.DueDate),
		customerDueDate: cloneTime(p.CustomerDueDate),
		createdAt:       p.CreatedAt.UTC(),
		lineItems:       append([]LineItem(nil), p.LineItems...),
		isConstructed:   true,
	}
	if p.Customer != nil {
		c := *p.Customer
		o.customer = &c
	}

	if err := errors.Join(
		o.setID(p.ID, p.Number),
		o.setStatus(p.Status, p.History),
		o.setAmounts(p.TotalAmount, p.AmountPaid),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) Nickname() string {
	return o.nickname
}

func (o *Order) Status() Status {
	return o.status
}

// Phase returns the catalog phase of the current status.
// BackendStatus is the backend's own status name when it was outside the
// catalog and Status fell back to DefaultStatus. It is empty otherwise.
func (o *Order) BackendStatus() string {
	return o.backendStatus
}

// IsCurrent reports whether status is already stored for the order, so that
// applying it again changes nothing.
func (o *Order) IsCurrent(status Status) bool {
	return status == o.status && o.backendStatus == ""
}

func (o *Order) Phase() Phase {
	return o.status.Phase()
}

// History returns a copy of the status history, oldest first.
func (o *Order) History() []StatusChange {
	return append([]StatusChange(nil), o.history...)
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

func (o *Order) AmountPaid() kernel.Money {
	return o.amountPaid
}

func (o *Order) AmountOutstanding() kernel.Money {
	return o.amountOutstanding
}

func (o *Order) DueDate() *time.Time {
	return cloneTime(o.dueDate)
}

func (o *Order) CustomerDueDate() *time.Time {
	return cloneTime(o.customerDueDate)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) LineItems() []LineItem {
	return append([]LineItem(nil), o.lineItems...)
}

// Customer returns the customer reference, or nil if the order has none.
func (o *Order) Customer() *CustomerRef {
	if o.customer == nil {
		return nil
	}
	c := *o.customer
	return &c
}

// ChangeStatus returns a copy of the order moved to newStatus, with one
// StatusChange appended to the history. The receiver is never modified.
//
// This method enforces the following business rules:
//   - newStatus must be in the catalog
//   - changing to the current status is a no-op (changed is false), except
//     for a status defaulted from a BackendStatus, which is written through
//   - changedAt is raised to the previous entry's time if the clock went backwards,
//     so the history stays chronological
//
// Returns:
//   - (*Order, true, nil) with the new order on a change
//   - (o, false, nil) when newStatus equals the current status
//   - (nil, false, error) for an unknown status or an invalid actor
//
// Example:
//
//	next, changed, err := o.ChangeStatus("SP - In Production", actor, time.Now())
func (o *Order) ChangeStatus(newStatus Status, by kernel.ActorID, at time.Time) (*Order, bool, error) {
	if err := newStatus.Validate(); err != nil {
		return nil, false, err
	}
	if err := by.Validate(); err != nil {
		return nil, false, err
	}
	if o.IsCurrent(newStatus) {
		return o, false, nil
	}

	if n := len(o.history); n > 0 && at.Before(o.history[n-1].changedAt) {
		at = o.history[n-1].changedAt
	}

	next := *o
	next.history = make([]StatusChange, 0, len(o.history)+1)
	next.history = append(next.history, o.history...)
	next.history = append(next.history, NewStatusChange(o.status, newStatus, at, by))
	next.status = newStatus
	next.backendStatus = ""

	return &next, true, nil
}

func (o *Order) setID(id, number string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}
	o.id = id

	o.number = strings.TrimSpace(number)
	if o.number == "" {
		o.number = id
	}
	return nil
}

// setStatus checks the status and its consistency with the history.
func (o *Order) setStatus(status Status, history []StatusChange) error {
	if err := status.Validate(); err != nil {
		return err
	}

	for i := 1; i < len(history); i++ {
		if history[i].changedAt.Before(history[i-1].changedAt) {
			return errs.NewValueIsInvalidErrorWithCause("history",
				fmt.Errorf("entry %d at %s precedes entry %d", i, history[i].changedAt.Format(time.RFC3339), i-1))
		}
	}
	if n := len(history); n > 0 && history[n-1].to != status {
		return errs.NewValueIsInvalidErrorWithCause("history",
			fmt.Errorf("last entry ends at %q, current status is %q", history[n-1].to, status))
	}

	o.status = status
	o.history = append([]StatusChange(nil), history...)
	return nil
}

func (o *Order) setAmounts(total, paid kernel.Money) error {
	var err error
	if total.IsNegative() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("totalAmount", total, 0, nil))
	}
	if paid.IsNegative() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("amountPaid", paid, 0, nil))
	}
	if err != nil {
		return err
	}

	o.totalAmount = total
	o.amountPaid = paid
	o.amountOutstanding = total.Sub(paid).Max(kernel.Money{})
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
