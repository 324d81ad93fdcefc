package pricingapi

import (
	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/pricing"
)

// customerTypeRepeat is how the pricing service spells a returning customer.
const customerTypeRepeat = "repeat_customer"

type calculateRequest struct {
	Quantity       int      `json:"quantity"`
	Service        string   `json:"service"`
	PrintLocations []string `json:"print_locations"`
	ColorCount     int      `json:"color_count"`
	StitchCount    *int     `json:"stitch_count,omitempty"`
	GarmentType    string   `json:"garment_type,omitempty"`
	CustomerType   string   `json:"customer_type,omitempty"`
	Rush           bool     `json:"rush,omitempty"`
	SetupNew       bool     `json:"setup_new,omitempty"`
}

type lineItemDTO struct {
	Description string        `json:"description"`
	UnitCost    *kernel.Money `json:"unit_cost"`
	Qty         *int          `json:"qty"`
	Total       kernel.Money  `json:"total"`
	Discount    *kernel.Money `json:"discount"`
}

type breakdownDTO struct {
	BaseCost           kernel.Money `json:"base_cost"`
	LocationSurcharges kernel.Money `json:"location_surcharges"`
	ColorAdjustments   kernel.Money `json:"color_adjustments"`
	VolumeDiscounts    kernel.Money `json:"volume_discounts"`
	MarginAmount       kernel.Money `json:"margin_amount"`
}

type calculateResponse struct {
	LineItems         []lineItemDTO `json:"line_items"`
	Subtotal          *kernel.Money `json:"subtotal"`
	MarginPct         float64       `json:"margin_pct"`
	TotalPrice        *kernel.Money `json:"total_price"`
	Breakdown         breakdownDTO  `json:"breakdown"`
	RulesApplied      []string      `json:"rules_applied"`
	CalculationTimeMs float64       `json:"calculation_time_ms"`
}

func fromCanonical(req decoration.CanonicalRequest) calculateRequest {
	locations := make([]string, 0, len(req.PrintLocations))
	for _, l := range req.PrintLocations {
		locations = append(locations, l.String())
	}

	customerType := string(req.CustomerType)
	if req.CustomerType == decoration.CustomerRepeat {
		customerType = customerTypeRepeat
	}

	return calculateRequest{
		Quantity:       req.Quantity,
		Service:        req.Service.String(),
		PrintLocations: locations,
		ColorCount:     req.ColorCount,
		StitchCount:    req.StitchCount,
		GarmentType:    string(req.GarmentType),
		CustomerType:   customerType,
		Rush:           req.Rush,
		SetupNew:       req.SetupNew,
	}
}

// toDomain maps the response. UnitPrice and Source are left for the caller,
// which knows the requested quantity.
func (r calculateResponse) toDomain() pricing.Result {
	items := make([]pricing.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, pricing.LineItem{
			Description: li.Description,
			UnitCost:    li.UnitCost,
			Quantity:    li.Qty,
			Total:       li.Total,
			Discount:    li.Discount,
		})
	}

	rules := r.RulesApplied
	if rules == nil {
		rules = []string{}
	}

	var calcMs int64
	if r.CalculationTimeMs > 0 {
		calcMs = int64(r.CalculationTimeMs)
	}

	return pricing.Result{
		TotalPrice: *r.TotalPrice,
		Subtotal:   *r.Subtotal,
		MarginPct:  r.MarginPct,
		Breakdown: pricing.Breakdown{
			BaseCost:           r.Breakdown.BaseCost,
			LocationSurcharges: r.Breakdown.LocationSurcharges,
			ColorAdjustments:   r.Breakdown.ColorAdjustments,
			VolumeDiscounts:    r.Breakdown.VolumeDiscounts,
			MarginAmount:       r.Breakdown.MarginAmount,
		},
		LineItems:         items,
		RulesApplied:      rules,
		CalculationTimeMs: calcMs,
	}
}
