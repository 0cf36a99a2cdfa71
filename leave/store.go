/*
store.go - Persistence interfaces for the leave domain

PURPOSE:
  Defines the interface between the domain logic and the database.
  Different implementations can use SQLite or in-memory storage.

SOFT-TRANSITION CONTRACT:
  Leave requests are never deleted. SaveRequest performs insert-or-
  replace so that status transitions (pending -> approved, etc.)
  overwrite the row in place; history of the decision lives on the
  request itself.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - leave/store/memory.go:  In-memory for testing

SEE ALSO:
  - service.go: Request lifecycle using these interfaces
*/
package leave

import "context"

// =============================================================================
// STORE INTERFACES
// =============================================================================

// UserStore persists user profiles.
type UserStore interface {
	SaveUser(ctx context.Context, u User) error

	// GetUser returns nil (no error) when the user doesn't exist.
	GetUser(ctx context.Context, id UserID) (*User, error)

	ListUsers(ctx context.Context) ([]User, error)
}

// LeaveTypeStore persists leave-type reference data.
type LeaveTypeStore interface {
	SaveLeaveType(ctx context.Context, lt LeaveType) error

	// GetLeaveType returns nil (no error) when the type doesn't exist.
	GetLeaveType(ctx context.Context, id LeaveTypeID) (*LeaveType, error)

	// ListLeaveTypes returns types in a stable order.
	ListLeaveTypes(ctx context.Context) ([]LeaveType, error)
}

// RequestStore persists leave requests.
type RequestStore interface {
	// SaveRequest inserts or replaces a request (soft transitions only).
	SaveRequest(ctx context.Context, req LeaveRequest) error

	// GetRequest returns nil (no error) when the request doesn't exist.
	GetRequest(ctx context.Context, id RequestID) (*LeaveRequest, error)

	// RequestsByUser returns all of a user's requests, newest first.
	RequestsByUser(ctx context.Context, userID UserID) ([]LeaveRequest, error)

	// PendingRequests returns every pending request, oldest first.
	PendingRequests(ctx context.Context) ([]LeaveRequest, error)
}

// BalanceStore persists backend-authoritative balance records.
type BalanceStore interface {
	// UpsertBalance sets the remaining days for user + leave type code.
	UpsertBalance(ctx context.Context, rec BalanceRecord) error

	BalancesByUser(ctx context.Context, userID UserID) ([]BalanceRecord, error)
}

// Store bundles everything the request service needs.
type Store interface {
	UserStore
	LeaveTypeStore
	RequestStore
	BalanceStore
}
