// Package decoration models a request to decorate garments and the vocabulary
// shared with the remote pricing service.
//
// The package includes:
//   - Method: the canonical decoration techniques understood by the pricing service
//   - LocationID: a canonical print placement
//   - MapMethod / MapLocation: the total mapping from UI identifiers to canonical ones
//   - Request: a validated decoration request, and CanonicalRequest, its service-side shape
//
// Mapping never fails. Unknown methods are priced as screen printing and
// unknown locations are forwarded unchanged, so a sales rep always gets a quote.
package decoration
