package decoration

import (
	"errors"
	"fmt"

	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMalformedInput marks a request that must not reach either pricing path.
	ErrMalformedInput = errors.New("malformed decoration request")

	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
)

var validate = validator.New()

// RequestParams is the raw, UI-level input for NewRequest.
type RequestParams struct {
	Method       string   `validate:"max=64"`
	Quantity     int      `validate:"gt=0"`
	ColorCount   int      `validate:"gte=0,lte=32"`
	StitchCount  *int     `validate:"omitempty,gt=0"`
	Locations    []string `validate:"min=1,dive,required"`
	GarmentType  string   `validate:"omitempty,oneof=light dark poly"`
	CustomerType string   `validate:"omitempty,oneof=new repeat repeat_customer"`
	Rush         bool
	SetupNew     bool
}

// Request is a validated decoration request.
//
// Invariants:
//   - quantity > 0
//   - colorCount >= 1 (a zero input defaults to 1)
//   - locations is a non-empty ordered set of UI placements
type Request struct {
	methodInput  string
	method       Method
	quantity     int
	colorCount   int
	stitchCount  *int
	locations    []string
	garmentType  GarmentType
	customerType CustomerType
	rush         bool
	setupNew     bool

	guard guard.ConstructorGuard
}

// NewRequest validates params and maps the method through MapMethod.
// Every failure wraps ErrMalformedInput.
func NewRequest(params RequestParams) (Request, error) {
	if err := validate.Struct(params); err != nil {
		return Request{}, malformed(err)
	}

	colorCount := params.ColorCount
	if colorCount == 0 {
		colorCount = 1
	}

	customerType := CustomerType(params.CustomerType)
	if params.CustomerType == "repeat_customer" {
		customerType = CustomerRepeat
	}

	var stitchCount *int
	if params.StitchCount != nil {
		v := *params.StitchCount
		stitchCount = &v
	}

	return Request{
		methodInput:  params.Method,
		method:       MapMethod(params.Method),
		quantity:     params.Quantity,
		colorCount:   colorCount,
		stitchCount:  stitchCount,
		locations:    uniqueLocations(params.Locations),
		garmentType:  GarmentType(params.GarmentType),
		customerType: customerType,
		rush:         params.Rush,
		setupNew:     params.SetupNew,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// MethodInput returns the method exactly as the UI sent it.
func (r Request) MethodInput() string {
	return r.methodInput
}

func (r Request) Method() Method {
	return r.method
}

func (r Request) Quantity() int {
	return r.quantity
}

func (r Request) ColorCount() int {
	return r.colorCount
}

func (r Request) Locations() []string {
	return append([]string(nil), r.locations...)
}

func (r Request) GarmentType() GarmentType {
	return r.garmentType
}

func (r Request) CustomerType() CustomerType {
	return r.customerType
}

func (r Request) Rush() bool {
	return r.rush
}

func (r Request) SetupNew() bool {
	return r.setupNew
}

// CanonicalRequest is a Request expressed in the pricing service's vocabulary.
type CanonicalRequest struct {
	Quantity       int
	Service        Method
	PrintLocations []LocationID
	ColorCount     int
	StitchCount    *int
	GarmentType    GarmentType
	CustomerType   CustomerType
	Rush           bool
	SetupNew       bool
}

// Canonical normalizes the request for the pricing service. Colour count is
// only forwarded for methods priced per colour; the others always send 1.
// Stitch count is only forwarded for embroidery.
func (r Request) Canonical() CanonicalRequest {
	locations := make([]LocationID, 0, len(r.locations))
	for _, l := range r.locations {
		locations = append(locations, MapLocation(l))
	}

	colorCount := 1
	if r.method.UsesColorCount() {
		colorCount = r.colorCount
	}

	var stitchCount *int
	if r.method == MethodEmbroidery && r.stitchCount != nil {
		v := *r.stitchCount
		stitchCount = &v
	}

	return CanonicalRequest{
		Quantity:       r.quantity,
		Service:        r.method,
		PrintLocations: locations,
		ColorCount:     colorCount,
		StitchCount:    stitchCount,
		GarmentType:    r.garmentType,
		CustomerType:   r.customerType,
		Rush:           r.rush,
		SetupNew:       r.setupNew,
	}
}

func uniqueLocations(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, l := range in {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func malformed(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	fieldErrs := make([]error, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs = append(fieldErrs, fieldError(fe))
	}
	return fmt.Errorf("%w: %w", ErrMalformedInput, errors.Join(fieldErrs...))
}

func fieldError(fe validator.FieldError) error {
	name := fe.Namespace()
	switch fe.Tag() {
	case "required", "min":
		return errs.NewValueIsRequiredErrorWithCause(name, fmt.Errorf("failed %q rule", fe.Tag()))
	case "gt", "gte", "lte", "max":
		return errs.NewValueIsOutOfRangeErrorWithCause(name, fe.Value(), fe.Param(), nil,
			fmt.Errorf("failed %q rule", fe.Tag()))
	default:
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v failed %q rule", fe.Value(), fe.Tag()))
	}
}
