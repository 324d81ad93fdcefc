package order

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// SizeLabel is a garment size column of a line item.
type SizeLabel string

const (
	SizeXS    SizeLabel = "XS"
	SizeS     SizeLabel = "S"
	SizeM     SizeLabel = "M"
	SizeL     SizeLabel = "L"
	SizeXL    SizeLabel = "XL"
	Size2XL   SizeLabel = "2XL"
	Size3XL   SizeLabel = "3XL"
	Size4XL   SizeLabel = "4XL"
	Size5XL   SizeLabel = "5XL"
	SizeOther SizeLabel = "Other"
)

// SizeLabels returns the size columns in display order.
func SizeLabels() []SizeLabel {
	return []SizeLabel{SizeXS, SizeS, SizeM, SizeL, SizeXL, Size2XL, Size3XL, Size4XL, Size5XL, SizeOther}
}

type SizeCount struct {
	Label SizeLabel
	Count int
}

// LineItemParams is the input of NewLineItem. Sizes missing from the map are
// recorded with a count of 0.
type LineItemParams struct {
	ID          string
	Description string
	StyleNumber string
	Color       string
	Category    string
	Quantity    int
	UnitPrice   kernel.Money
	TotalCost   *kernel.Money
	Sizes       map[SizeLabel]int
}

// LineItem is a garment line of an order.
type LineItem struct {
	id          string
	description string
	styleNumber string
	color       string
	category    string
	quantity    int
	unitPrice   kernel.Money
	totalCost   kernel.Money
	sizes       []SizeCount
}

// NewLineItem validates quantity >= 0, unitPrice >= 0 and non-negative size
// counts. TotalCost defaults to quantity × unitPrice when not given.
func NewLineItem(p LineItemParams) (LineItem, error) {
	var err error
	if p.Quantity < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("quantity", p.Quantity, 0, nil))
	}
	if p.UnitPrice.IsNegative() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("unitPrice", p.UnitPrice, 0, nil))
	}

	sizes := make([]SizeCount, 0, len(SizeLabels()))
	for _, label := range SizeLabels() {
		count := p.Sizes[label]
		if count < 0 {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError("sizes."+string(label), count, 0, nil))
		}
		sizes = append(sizes, SizeCount{Label: label, Count: count})
	}
	if err != nil {
		return LineItem{}, err
	}

	total := p.UnitPrice.MulInt(p.Quantity)
	if p.TotalCost != nil {
		total = *p.TotalCost
	}

	return LineItem{
		id:          p.ID,
		description: p.Description,
		styleNumber: p.StyleNumber,
		color:       p.Color,
		category:    p.Category,
		quantity:    p.Quantity,
		unitPrice:   p.UnitPrice,
		totalCost:   total,
		sizes:       sizes,
	}, nil
}

func (li LineItem) ID() string { return li.id }
func (li LineItem) Description() string { return li.description }
func (li LineItem) StyleNumber() string { return li.styleNumber }
func (li LineItem) Color() string { return li.color }
func (li LineItem) Category() string { return li.category }
func (li LineItem) Quantity() int { return li.quantity }
func (li LineItem) UnitPrice() kernel.Money { return li.unitPrice }
func (li LineItem) TotalCost() kernel.Money { return li.totalCost }

// Sizes returns every size column in display order, zero counts included.
func (li LineItem) Sizes() []SizeCount {
	return append([]SizeCount(nil), li.sizes...)
}

// Size returns the count recorded for one size column.
func (li LineItem) Size(label SizeLabel) int {
	for _, s := range li.sizes {
		if s.Label == label {
			return s.Count
		}
	}
	return 0
}
