// Package errs provides standardized error types for the restaurant application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the error taxonomy of the fulfilment engine:
//   - ObjectNotFoundError: removals and cancellations referencing absent entities
//   - DuplicateError: name collisions (e.g. registering a taken username)
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     validation failures in value objects and commands
//
// Each error type follows a consistent pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying the error details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() for classification
//
// Domain and transport failures are never retried; the sentinel classification
// is what decides whether a failure surfaces as a typed error or as a null
// reply on the wire.
package errs
