package decoration

import "strings"

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var methodVocabulary = map[string]Method{
	"screen-printing": MethodScreen,
	"screenprint":     MethodScreen,
	"screen":          MethodScreen,
	"embroidery":      MethodEmbroidery,
	"heat-transfer":   MethodHeatTransfer,
	"dtf":             MethodDTF,
	"dtg":             MethodDTG,
	"vinyl":           MethodVinyl,
	"sublimation":     MethodSublimation,
}

var locationVocabulary = map[string]LocationID{
	"front-center":      "front",
	"front-left-chest":  "left-chest",
	"front-right-chest": "chest",
	"full-front":        "front",
	"back-center":       "back",
	"back-neck":         "back-neck",
	"full-back":         "full-back",
	"left-sleeve":       "sleeve",
	"right-sleeve":      "sleeve",
}

// MapMethod translates a UI method name into the pricing service's method.
// Matching ignores case and surrounding whitespace; anything unknown maps to
// DefaultMethod.
func MapMethod(input string) Method {
	if m, ok := methodVocabulary[strings.ToLower(strings.TrimSpace(input))]; ok {
		return m
	}
	return DefaultMethod
}

// IsKnownMethod reports whether MapMethod recognizes input rather than defaulting.
func IsKnownMethod(input string) bool {
	_, ok := methodVocabulary[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// MapLocation translates a UI placement into the pricing service's location.
// Matching is exact; unknown placements pass through unchanged.
func MapLocation(input string) LocationID {
	if l, ok := locationVocabulary[input]; ok {
		return l
	}
	return LocationID(input)
}

// Methods returns the decoration methods offered to the UI, in display order.
func Methods() []Option {
	return []Option{
		{Value: "screen-printing", Label: "Screen Printing"},
		{Value: "embroidery", Label: "Embroidery"},
		{Value: "dtg", Label: "DTG (Direct to Garment)"},
		{Value: "heat-transfer", Label: "Heat Transfer"},
		{Value: "dtf", Label: "DTF (Direct to Film)"},
		{Value: "sublimation", Label: "Sublimation"},
		{Value: "vinyl", Label: "Vinyl"},
	}
}

// Locations returns the print placements offered to the UI, in display order.
func Locations() []Option {
	return []Option{
		{Value: "front-center", Label: "Front Center"},
		{Value: "front-left-chest", Label: "Left Chest"},
		{Value: "front-right-chest", Label: "Right Chest"},
		{Value: "full-front", Label: "Full Front"},
		{Value: "back-center", Label: "Back Center"},
		{Value: "back-neck", Label: "Back Neck"},
		{Value: "full-back", Label: "Full Back"},
		{Value: "left-sleeve", Label: "Left Sleeve"},
		{Value: "right-sleeve", Label: "Right Sleeve"},
	}
}
