package services

import (
	"errors"
	"fmt"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
)

// ErrTransitionNotAllowed is returned when a TransitionPolicy vetoes a change.
var ErrTransitionNotAllowed = errors.New("status transition not allowed")

// TransitionPolicy decides whether an order may move from one status to
// another. Both statuses are catalog members when the policy is consulted.
type TransitionPolicy interface {
	Allow(from, to order.Status) error
}

// TransitionPolicyFunc adapts a function to TransitionPolicy.
type TransitionPolicyFunc func(from, to order.Status) error

func (f TransitionPolicyFunc) Allow(from, to order.Status) error {
	return f(from, to)
}

// AllowAll lets any status follow any other.
var AllowAll TransitionPolicy = TransitionPolicyFunc(func(order.Status, order.Status) error { return nil })

// ForbidLeaving returns a policy that refuses to move an order out of any of
// the given statuses, for shops that treat them as final.
func ForbidLeaving(final ...order.Status) TransitionPolicy {
	set := make(map[order.Status]struct{}, len(final))
	for _, s := range final {
		set[s] = struct{}{}
	}
	return TransitionPolicyFunc(func(from, to order.Status) error {
		if _, ok := set[from]; ok {
			return fmt.Errorf("%w: %q is final", ErrTransitionNotAllowed, from)
		}
		return nil
	})
}

// WorkflowEngine applies status changes to orders.
//
// Business rules:
//   - The new status must be in the workflow catalog
//   - Re-applying the current status is a no-op, unless the status was
//     defaulted from a backend name outside the catalog
//   - Every change appends exactly one history entry stamped with the clock
//   - The input order is never modified
//
// Example usage:
//
//	engine := services.NewWorkflowEngine(kernel.SystemClock{}, services.AllowAll)
//	next, changed, err := engine.Apply(o, "SP - In Production", actor)
//	if errors.Is(err, order.ErrUnknownStatus) {
//	    // reject the request
//	}
type WorkflowEngine struct {
	clock  kernel.Clock
	policy TransitionPolicy
}

// NewWorkflowEngine builds an engine. A nil clock means kernel.SystemClock and
// a nil policy means AllowAll.
func NewWorkflowEngine(clock kernel.Clock, policy TransitionPolicy) WorkflowEngine {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if policy == nil {
		policy = AllowAll
	}
	return WorkflowEngine{clock: clock, policy: policy}
}

// Apply moves o to newStatus on behalf of actor.
//
// Returns:
//   - (next, true, nil) with a new order when the status changed
//   - (o, false, nil) when o is already in newStatus
//   - (nil, false, err) when newStatus is unknown, the policy refuses, or o is invalid
func (e WorkflowEngine) Apply(o *order.Order, newStatus order.Status, actor kernel.ActorID) (*order.Order, bool, error) {
	if err := o.Validate(); err != nil {
		return nil, false, err
	}
	if err := newStatus.Validate(); err != nil {
		return nil, false, err
	}
	if o.IsCurrent(newStatus) {
		return o, false, nil
	}
	if err := e.policy.Allow(o.Status(), newStatus); err != nil {
		return nil, false, err
	}

	return o.ChangeStatus(newStatus, actor, e.clock.Now())
}
