package pricing

import (
	"errors"
	"fmt"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// Source tells where a Result was computed.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

type Breakdown struct {
	BaseCost           kernel.Money `json:"baseCost"`
	LocationSurcharges kernel.Money `json:"locationSurcharges"`
	ColorAdjustments   kernel.Money `json:"colorAdjustments"`
	VolumeDiscounts    kernel.Money `json:"volumeDiscounts"`
	MarginAmount       kernel.Money `json:"marginAmount"`
}

type LineItem struct {
	Description string        `json:"description"`
	UnitCost    *kernel.Money `json:"unitCost,omitempty"`
	Quantity    *int          `json:"qty,omitempty"`
	Total       kernel.Money  `json:"total"`
	Discount    *kernel.Money `json:"discount,omitempty"`
}

// Result is a priced decoration request.
type Result struct {
	UnitPrice         kernel.Money `json:"unitPrice"`
	TotalPrice        kernel.Money `json:"totalPrice"`
	Subtotal          kernel.Money `json:"subtotal"`
	MarginPct         float64      `json:"marginPct"`
	Breakdown         Breakdown    `json:"breakdown"`
	LineItems         []LineItem   `json:"lineItems"`
	RulesApplied      []string     `json:"rulesApplied"`
	CalculationTimeMs int64        `json:"calculationTimeMs"`
	Source            Source       `json:"source"`
}

// UnitPriceOf divides total by quantity, returning zero for a non-positive quantity.
func UnitPriceOf(total kernel.Money, quantity int) kernel.Money {
	if quantity <= 0 {
		return kernel.Money{}
	}
	return total.DivInt(quantity)
}

// Validate checks totalPrice >= subtotal >= 0 and that no money value is negative.
func (r Result) Validate() error {
	var err error
	check := func(name string, m kernel.Money) {
		if m.IsNegative() {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError(name, m, 0, nil))
		}
	}

	check("unitPrice", r.UnitPrice)
	check("totalPrice", r.TotalPrice)
	check("subtotal", r.Subtotal)
	check("breakdown.baseCost", r.Breakdown.BaseCost)
	check("breakdown.marginAmount", r.Breakdown.MarginAmount)

	if r.TotalPrice.Cmp(r.Subtotal) < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("total %s is below subtotal %s", r.TotalPrice, r.Subtotal)))
	}
	if r.CalculationTimeMs < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("calculationTimeMs", r.CalculationTimeMs, 0, nil))
	}
	return err
}
