package decoration

import (
	"fmt"

	"printshop/internal/pkg/errs"
)

// Method is a canonical decoration technique.
type Method string

const (
	MethodScreen       Method = "screen"
	MethodEmbroidery   Method = "embroidery"
	MethodHeatTransfer Method = "heat-transfer"
	MethodDTF          Method = "dtf"
	MethodVinyl        Method = "vinyl"
	MethodSublimation  Method = "sublimation"
	MethodDTG          Method = "dtg"
)

// DefaultMethod is what any unrecognized UI method maps to.
const DefaultMethod = MethodScreen

var canonicalMethods = map[Method]struct{}{
	MethodScreen:       {},
	MethodEmbroidery:   {},
	MethodHeatTransfer: {},
	MethodDTF:          {},
	MethodVinyl:        {},
	MethodSublimation:  {},
	MethodDTG:          {},
}

// AllMethods lists the canonical methods in a stable order.
func AllMethods() []Method {
	return []Method{
		MethodScreen,
		MethodEmbroidery,
		MethodDTG,
		MethodHeatTransfer,
		MethodDTF,
		MethodSublimation,
		MethodVinyl,
	}
}

func (m Method) String() string {
	return string(m)
}

func (m Method) Validate() error {
	if _, ok := canonicalMethods[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a decoration method", string(m)))
	}
	return nil
}

// UsesColorCount reports whether the method is priced per ink or thread colour.
func (m Method) UsesColorCount() bool {
	return m == MethodScreen || m == MethodEmbroidery
}

// LocationID is a canonical print placement such as "front" or "left-chest".
type LocationID string

func (l LocationID) String() string {
	return string(l)
}

// GarmentType is the garment fabric class used by the pricing rules.
type GarmentType string

const (
	GarmentLight GarmentType = "light"
	GarmentDark  GarmentType = "dark"
	GarmentPoly  GarmentType = "poly"
)

// CustomerType distinguishes first-time customers from returning ones.
type CustomerType string

const (
	CustomerNew    CustomerType = "new"
	CustomerRepeat CustomerType = "repeat"
)
