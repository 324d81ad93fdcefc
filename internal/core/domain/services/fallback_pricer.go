package services

import (
	"fmt"

	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// FallbackRule is the rate table entry of one decoration method.
type FallbackRule struct {
	Base     kernel.Money
	PerColor kernel.Money
}

// FallbackRuleName is reported in Result.RulesApplied for fallback quotes.
const FallbackRuleName = "fallback-rate-table"

// FallbackMarginPct is the margin applied on top of the fallback subtotal.
const FallbackMarginPct = 35

var (
	defaultFallbackRule = FallbackRule{Base: kernel.MoneyFromInt(8)}

	fallbackRules = map[decoration.Method]FallbackRule{
		decoration.MethodScreen:       {Base: kernel.MoneyFromInt(8), PerColor: kernel.MustParseMoney("1.50")},
		decoration.MethodEmbroidery:   {Base: kernel.MoneyFromInt(12), PerColor: kernel.MoneyFromInt(2)},
		decoration.MethodDTG:          {Base: kernel.MoneyFromInt(15)},
		decoration.MethodHeatTransfer: {Base: kernel.MoneyFromInt(10)},
		decoration.MethodDTF:          {Base: kernel.MoneyFromInt(12)},
		decoration.MethodSublimation:  {Base: kernel.MoneyFromInt(18)},
		decoration.MethodVinyl:        {Base: kernel.MoneyFromInt(8)},
	}

	marginFactor = decimal.NewFromInt(100 + FallbackMarginPct).Div(decimal.NewFromInt(100))
)

// FallbackPricer quotes a decoration request from a fixed local rate table.
// It is used whenever the remote pricing service cannot produce a result.
//
// For a request of quantity q with c colours:
//
//	unit     = base + c × perColor
//	subtotal = unit × q
//	total    = subtotal × 1.35
type FallbackPricer struct{}

func NewFallbackPricer() FallbackPricer {
	return FallbackPricer{}
}

// Rule returns the rate table entry for m, or the default entry for a
// method missing from the table.
func (FallbackPricer) Rule(m decoration.Method) FallbackRule {
	if r, ok := fallbackRules[m]; ok {
		return r
	}
	return defaultFallbackRule
}

// RuleFor returns the rate table entry for the method the UI sent. A method
// outside the vocabulary gets the default entry rather than the rates of the
// method MapMethod falls back to.
func (p FallbackPricer) RuleFor(r decoration.Request) FallbackRule {
	if !decoration.IsKnownMethod(r.MethodInput()) {
		return defaultFallbackRule
	}
	return p.Rule(r.Method())
}

// Quote prices r with the rate table. The result is always valid and has
// Source set to pricing.SourceFallback.
//
// UnitPrice is rounded to the minor unit, so UnitPrice × quantity may differ
// from TotalPrice by up to half a minor unit per item.
func (p FallbackPricer) Quote(r decoration.Request) pricing.Result {
	rule := p.RuleFor(r)
	qty := r.Quantity()

	method := string(r.Method())
	if !decoration.IsKnownMethod(r.MethodInput()) {
		method = r.MethodInput()
	}

	colorUnit := rule.PerColor.MulInt(r.ColorCount())
	unit := rule.Base.Add(colorUnit)
	subtotal := unit.MulInt(qty)
	total := subtotal.MulDecimal(marginFactor)

	return pricing.Result{
		UnitPrice:  pricing.UnitPriceOf(total, qty),
		TotalPrice: total,
		Subtotal:   subtotal,
		MarginPct:  FallbackMarginPct,
		Breakdown: pricing.Breakdown{
			BaseCost:         subtotal,
			ColorAdjustments: colorUnit.MulInt(qty),
			MarginAmount:     total.Sub(subtotal),
		},
		LineItems: []pricing.LineItem{{
			Description: fmt.Sprintf("%s x%d", method, qty),
			UnitCost:    &unit,
			Quantity:    &qty,
			Total:       subtotal,
		}},
		RulesApplied:      []string{FallbackRuleName},
		CalculationTimeMs: 0,
		Source:            pricing.SourceFallback,
	}
}
