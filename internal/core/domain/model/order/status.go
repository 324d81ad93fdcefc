package order

import (
	"errors"
	"fmt"
	"strings"

	"printshop/internal/pkg/errs"
)

// ErrUnknownStatus is returned for a status that is not in the workflow catalog.
var ErrUnknownStatus = errors.New("unknown workflow status")

// Status is a workflow status name such as "SP - In Production".
//
// Status is an opaque string; membership in the catalog is checked with
// Validate. The zero value is not a valid status.
type Status string

// Phase is a named stage of the workflow. The catalog phases group the
// statuses; Cancelled and Other only appear as Classify results.
type Phase string

const (
	PhaseQuotes      Phase = "Quotes"
	PhaseArtDesign   Phase = "Art & Design"
	PhaseScreenPrint Phase = "Screen Print"
	PhaseEmbroidery  Phase = "Embroidery"
	PhaseDTG         Phase = "DTG"
	PhaseFulfillment Phase = "Fulfillment"
	PhaseCompletion  Phase = "Completion"
	PhaseCancelled   Phase = "Cancelled"
	PhaseOther       Phase = "Other"
)

// DefaultStatus is the status of a freshly created order.
const DefaultStatus Status = "QUOTE"

// PhaseGroup is one catalog phase with its ordered statuses.
type PhaseGroup struct {
	Phase    Phase    `json:"phase"`
	Color    string   `json:"color"`
	Statuses []Status `json:"statuses"`
}

var catalog = []PhaseGroup{
	{Phase: PhaseQuotes, Statuses: []Status{
		"QUOTE",
		"QUOTE - Pending Approval",
		"QUOTE - Sent",
		"QUOTE - Approved",
		"QUOTE - Rejected",
	}},
	{Phase: PhaseArtDesign, Statuses: []Status{
		"ART - Waiting for Art",
		"ART - In Progress",
		"ART - Ready for Review",
		"ART - Approved",
		"ART - Revisions Needed",
	}},
	{Phase: PhaseScreenPrint, Statuses: []Status{
		"SP - Waiting for Screens",
		"SP - Screens Ready",
		"SP - In Production",
		"SP - On Press",
		"SP - Printing Complete",
	}},
	{Phase: PhaseEmbroidery, Statuses: []Status{
		"EMB - Digitizing",
		"EMB - Ready to Stitch",
		"EMB - In Production",
		"EMB - Complete",
	}},
	{Phase: PhaseDTG, Statuses: []Status{
		"DTG - Queue",
		"DTG - Printing",
		"DTG - Complete",
	}},
	{Phase: PhaseFulfillment, Statuses: []Status{
		"SUPA - Ready for Fulfillment",
		"SUPA - Packing",
		"SUPA - Ready for Pickup",
		"SUPA - Shipped",
	}},
	{Phase: PhaseCompletion, Statuses: []Status{
		"COMPLETE",
		"COMPLETE - Picked Up",
		"COMPLETE - Delivered",
		"INVOICE PAID",
		"CANCELLED",
	}},
}

// statusIndex maps every catalog status to its phase, and lowerIndex maps
// the lower-cased name back to the catalog spelling.
var (
	statusIndex = map[Status]Phase{}
	lowerIndex  = map[string]Status{}
)

func init() {
	for _, g := range catalog {
		for _, s := range g.Statuses {
			statusIndex[s] = g.Phase
			lowerIndex[strings.ToLower(string(s))] = s
		}
	}
}

// Catalog returns the workflow catalog, phases and statuses in display order.
// The returned slice is a copy and may be modified by the caller.
func Catalog() []PhaseGroup {
	out := make([]PhaseGroup, 0, len(catalog))
	for _, g := range catalog {
		out = append(out, PhaseGroup{
			Phase:    g.Phase,
			Color:    g.Phase.Color(),
			Statuses: append([]Status(nil), g.Statuses...),
		})
	}
	return out
}

// AllStatuses returns every catalog status in display order.
func AllStatuses() []Status {
	out := make([]Status, 0, len(statusIndex))
	for _, g := range catalog {
		out = append(out, g.Statuses...)
	}
	return out
}

// ParseStatus returns s as a Status if it is spelled exactly as in the catalog.
//
// Returns:
//   - the status and nil for a catalog member
//   - an error matching both ErrUnknownStatus and errs.ErrValueIsInvalid otherwise
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// LookupStatus finds the catalog status matching s case-insensitively,
// ignoring surrounding whitespace. Backend data is not always spelled the way
// the catalog is.
func LookupStatus(s string) (Status, bool) {
	status, ok := lowerIndex[strings.ToLower(strings.TrimSpace(s))]
	return status, ok
}

// Validate checks that the status is a member of the catalog.
func (s Status) Validate() error {
	if _, ok := statusIndex[s]; !ok {
		return fmt.Errorf("%w: %w", ErrUnknownStatus,
			errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not in the workflow catalog", string(s))))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Phase returns the catalog phase the status belongs to, or PhaseOther for a
// status outside the catalog. Unlike Classify this never guesses from the name.
func (s Status) Phase() Phase {
	if p, ok := statusIndex[s]; ok {
		return p
	}
	return PhaseOther
}

type classifier struct {
	phase     Phase
	fragments []string
}

// classifiers are tested in order; the first fragment found wins.
var classifiers = []classifier{
	{PhaseQuotes, []string{"quote"}},
	{PhaseArtDesign, []string{"art"}},
	{PhaseScreenPrint, []string{"sp ", "screen"}},
	{PhaseEmbroidery, []string{"emb"}},
	{PhaseDTG, []string{"dtg"}},
	{PhaseFulfillment, []string{"supa", "fulfillment"}},
	{PhaseCompletion, []string{"complete", "paid"}},
	{PhaseCancelled, []string{"cancel"}},
	{PhaseFulfillment, []string{"shipped", "pickup"}},
}

// Classify groups any status name, in the catalog or not, into a display phase
// by looking for known fragments in its lower-cased name.
//
// Example:
//
//	order.Classify("SP - On Press")    // PhaseScreenPrint
//	order.Classify("CANCELLED")        // PhaseCancelled
//	order.Classify("On hold")          // PhaseOther
func Classify(status string) Phase {
	lower := strings.ToLower(status)
	for _, c := range classifiers {
		for _, f := range c.fragments {
			if strings.Contains(lower, f) {
				return c.phase
			}
		}
	}
	return PhaseOther
}

var phaseColors = map[Phase]string{
	PhaseQuotes:      "yellow",
	PhaseArtDesign:   "purple",
	PhaseScreenPrint: "blue",
	PhaseEmbroidery:  "pink",
	PhaseDTG:         "indigo",
	PhaseFulfillment: "cyan",
	PhaseCompletion:  "green",
	PhaseCancelled:   "red",
	PhaseOther:       "gray",
}

// Color returns the UI colour token of the phase.
func (p Phase) Color() string {
	if c, ok := phaseColors[p]; ok {
		return c
	}
	return phaseColors[PhaseOther]
}

func (p Phase) String() string {
	return string(p)
}
