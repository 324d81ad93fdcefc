// Package kernel provides the value objects shared by every printshop domain
// package.
//
// The package includes:
//   - Money: a decimal amount always rounded to the currency minor unit
//   - ActorID: the identifier of whoever performed an audited action
//   - Clock: the time source injected wherever a timestamp is recorded
//
// All kernel values are immutable and safe for concurrent use.
package kernel
