package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrInvalidState signals an operation attempted from a disallowed state,
// e.g. accepting an already-handled offer or cancelling a delivered delivery.
var ErrInvalidState = errors.New("invalid state")

// ErrPrecondition signals that data required by the operation is missing,
// e.g. coordinates needed for distance math or splitting.
var ErrPrecondition = errors.New("precondition failed")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")
