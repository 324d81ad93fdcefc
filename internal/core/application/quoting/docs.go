// Package quoting keeps the live quote of a pricing form up to date while the
// user is still typing.
//
// A Session debounces submissions and applies results last-request-wins: a
// response for an older submission never replaces the result of a newer one,
// whatever order the responses arrive in. A Registry holds one Session per
// browser form. HealthMonitor caches the pricing service's availability.
package quoting
