package core

import "errors"

// Business-rule violations are reported as typed failures, never panics.
// Callers branch with errors.Is; the UI layer owns user-visible surfaces.
var (
	// ErrIllegalTransition marks a status change the state machine does not
	// permit. Raised before any mutation; prior state is untouched.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrDuplicateInvoice marks a second invoice attempt against an
	// already-invoiced milestone.
	ErrDuplicateInvoice = errors.New("milestone already invoiced")

	// ErrInvalidInput marks missing or malformed required fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a lookup miss for a stored entity.
	ErrNotFound = errors.New("not found")
)
