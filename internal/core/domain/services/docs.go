// Package services provides domain services that don't naturally belong to a
// single aggregate.
//
// The package includes:
//   - FallbackPricer: quotes decoration requests from a local rate table
//   - WorkflowEngine: applies order status changes under a TransitionPolicy
package services
