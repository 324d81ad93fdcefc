// Package queries contains read operations: pricing a decoration request and
// reading an order. Queries never change backend state.
package queries

import (
	"errors"

	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/pkg/guard"
)

var (
	ErrCalculatePricingQueryIsNotConstructed = errors.New(
		"CalculatePricingQuery must be created via NewCalculatePricingQuery constructor",
	)
)

// CalculatePricingQuery asks for the price of one decoration request.
//
// Example:
//
//	req, err := decoration.NewRequest(decoration.RequestParams{
//	    Method: "screen-printing", Quantity: 100, ColorCount: 2, Locations: []string{"front-center"},
//	})
//	if err != nil {
//	    return err // errors.Is(err, decoration.ErrMalformedInput)
//	}
//	query, _ := NewCalculatePricingQuery(req)
//	result, err := handler.Handle(ctx, query)
type CalculatePricingQuery struct {
	request decoration.Request

	guard guard.ConstructorGuard
}

// NewCalculatePricingQuery wraps a validated decoration request.
func NewCalculatePricingQuery(request decoration.Request) (CalculatePricingQuery, error) {
	if err := request.Validate(); err != nil {
		return CalculatePricingQuery{}, err
	}
	return CalculatePricingQuery{request: request, guard: guard.NewConstructorGuard()}, nil
}

func (q CalculatePricingQuery) Validate() error {
	return q.guard.Validate(ErrCalculatePricingQueryIsNotConstructed)
}

func (q CalculatePricingQuery) Request() decoration.Request {
	return q.request
}
