// Package ports declares the interfaces the application core needs from the
// outside world: the order backend, the pricing service and the event bus.
package ports
