// Package order provides the Order aggregate tracked through the print shop's
// production workflow.
//
// The package includes:
//   - Order: the aggregate root holding amounts, line items and the status history
//   - Status and Phase: the fixed workflow catalog and its display grouping
//   - StatusChange: an immutable record of one status transition
//   - LineItem and CustomerRef: read-only parts of the order owned by the backend
//
// Key business rules:
//   - An order's status is always a member of the catalog
//   - The status history is append-only and chronological
//   - The last history entry, when present, ends at the current status
//   - amountOutstanding = max(totalAmount - amountPaid, 0)
//   - Any status may follow any other; the catalog has no transition graph
//
// Orders are never mutated in place. ChangeStatus returns a new Order so that a
// caller holding the previous value can roll back by simply keeping it.
package order
