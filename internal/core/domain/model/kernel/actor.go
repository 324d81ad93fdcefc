package kernel

import (
	"fmt"
	"strings"

	"printshop/internal/pkg/errs"
)

const maxActorIDLength = 128

// ErrActorIDIsNotConstructed is returned when validating an empty ActorID.
var ErrActorIDIsNotConstructed = errs.NewValueIsRequiredError("actor ID must be created via NewActorID")

// ActorID identifies the user or system that changed an order.
type ActorID struct {
	value string
}

// SystemActor is recorded for entries the service synthesizes itself.
var SystemActor = ActorID{value: "system"}

// NewActorID trims s and rejects empty or oversized identifiers.
func NewActorID(s string) (ActorID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ActorID{}, errs.NewValueIsRequiredError("actor ID")
	}
	if len(s) > maxActorIDLength {
		return ActorID{}, errs.NewValueIsOutOfRangeErrorWithCause("actor ID length", len(s), 1, maxActorIDLength,
			fmt.Errorf("actor ID %q is too long", s[:16]+"..."))
	}
	return ActorID{value: s}, nil
}

func (a ActorID) String() string {
	return a.value
}

func (a ActorID) IsEqual(other ActorID) bool {
	return a.value == other.value
}

func (a ActorID) Validate() error {
	if a.value == "" {
		return ErrActorIDIsNotConstructed
	}
	return nil
}
