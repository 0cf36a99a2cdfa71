/*
errors.go - Centralized error types for the leave domain

PURPOSE:
  All sentinel errors in one place for consistency and discoverability.
  Note the asymmetry that runs through this package: the distribution
  COMPUTATION never returns errors (bad references degrade silently),
  while the request LIFECYCLE and stores fail loudly — a rejected state
  transition or a missing row is a real fault, not something to paper
  over.

USAGE:
  if errors.Is(err, leave.ErrInvalidTransition) { ... }
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUserNotFound is returned when a referenced user doesn't exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrLeaveTypeNotFound is returned when submitting a request against
	// an unknown leave type. (Aggregation-time lookups degrade silently
	// instead; this error is for the write path only.)
	ErrLeaveTypeNotFound = errors.New("leave type not found")

	// ErrRequestNotFound is returned when a referenced request doesn't exist.
	ErrRequestNotFound = errors.New("leave request not found")

	// ErrInvalidTransition is returned when a request is decided from a
	// status that doesn't allow it (e.g. approving a cancelled request).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyRange is returned when a submitted request spans zero
	// working days (weekend-only or reversed range).
	ErrEmptyRange = errors.New("request spans no working days")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TransitionError reports a rejected status transition with context.
type TransitionError struct {
	RequestID RequestID
	From      RequestStatus
	To        RequestStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("request %s: cannot move from %s to %s", e.RequestID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrLeaveTypeNotFound) ||
		errors.Is(err, ErrRequestNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrEmptyRange)
}
