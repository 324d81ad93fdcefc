// Package errs provides the error types shared by the printshop service.
// Every type follows one pattern: a sentinel error variable, a struct carrying
// the details and an optional Cause, constructors with and without a cause,
// Error() for formatting and Unwrap() returning the sentinel so callers can
// classify failures with errors.Is.
//
// The package includes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: lookups against the order backend
//   - PersistenceError: a backend write that was rejected
//   - TransportError: a remote call that failed (ErrNetwork or ErrInvalidResponse)
package errs
