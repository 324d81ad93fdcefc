package order

import (
	"time"

	"printshop/internal/core/domain/model/kernel"
)

// StatusChange records one transition. It is immutable once created.
//
// From is empty for the first transition of an order that was imported
// without a previous status. History entries are not checked against the
// catalog, since the backend may hold statuses that have since been retired.
type StatusChange struct {
	from      Status
	to        Status
	changedAt time.Time
	changedBy kernel.ActorID
}

func NewStatusChange(from, to Status, changedAt time.Time, changedBy kernel.ActorID) StatusChange {
	return StatusChange{
		from:      from,
		to:        to,
		changedAt: changedAt.UTC(),
		changedBy: changedBy,
	}
}

func (c StatusChange) From() Status {
	return c.from
}

func (c StatusChange) To() Status {
	return c.to
}

func (c StatusChange) ChangedAt() time.Time {
	return c.changedAt
}

func (c StatusChange) ChangedBy() kernel.ActorID {
	return c.changedBy
}
