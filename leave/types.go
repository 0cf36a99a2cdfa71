/*
Package leave provides the core leave management domain.

PURPOSE:
  This package contains the types and algorithms for leave tracking:
  leave-type reference data, the leave request lifecycle, and the
  balance distribution computation that answers "how many days does
  this user have left, per leave type?".

KEY CONCEPTS IN THIS FILE (types.go):
  - LeaveType: Immutable reference data (code, description, allocation)
  - LeaveRequest: A request for days off with a soft status lifecycle
  - BalanceRecord: Backend-authoritative remaining-days figure
  - User: Profile data; only Gender matters to this package

DESIGN PRINCIPLES:
  1. Soft transitions: Requests are never deleted, only moved between
     pending/approved/rejected/cancelled
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Defensive degradation: The distribution computation skips bad
     references instead of failing the whole batch

SEE ALSO:
  - calendar.go: Date type and working-day counter
  - distribution.go: Balance distribution computation
  - service.go: Request lifecycle orchestration
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID string
type LeaveTypeID string
type RequestID string

// =============================================================================
// GENDER - Used solely for eligibility filtering
// =============================================================================

// Gender is a lower-cased gender string. Values other than "male" and
// "female" are valid inputs; they are simply ineligible for the
// gender-restricted leave types.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// =============================================================================
// DAY AMOUNTS
// =============================================================================

// Days constructs a day amount from a float.
func Days(n float64) decimal.Decimal { return decimal.NewFromFloat(n) }

// DaysInt constructs a day amount from an integer.
func DaysInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// =============================================================================
// LEAVE TYPE - Immutable reference data, fetched once per session
// =============================================================================

// LeaveType is a category of absence with a default yearly allocation.
type LeaveType struct {
	ID          LeaveTypeID
	Code        string // short symbolic name, e.g. "maternity", "annual"
	Description string

	// Default allocation in days per year
	DefaultAllocationDays decimal.Decimal
}

// =============================================================================
// LEAVE REQUEST - Soft state transitions only, never deleted
// =============================================================================

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// CountsAsUsed reports whether requests in this status consume balance.
// Pending requests hold balance so users cannot overdraw while a
// decision is outstanding.
func (s RequestStatus) CountsAsUsed() bool {
	return s == StatusApproved || s == StatusPending
}

// Decision records who decided a request and why.
type Decision struct {
	By   string
	At   time.Time
	Note string
}

// LeaveRequest is a request for days off. Created by a user action,
// mutated only by approval/rejection/cancellation.
type LeaveRequest struct {
	ID          RequestID
	UserID      UserID
	LeaveTypeID LeaveTypeID

	// Inclusive date range being requested
	StartDate Date
	EndDate   Date

	// Total requested days (working days unless overridden at submission)
	TotalDays decimal.Decimal

	Status RequestStatus

	// Set on approve/reject, nil while pending
	Decision *Decision

	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// =============================================================================
// BALANCE RECORD - Backend-authoritative remaining balance
// =============================================================================

// BalanceRecord is the per-user per-leave-type remaining-days figure
// reported by the system of record. It wins over locally derived
// remaining balance because it may reflect manual admin adjustments
// not visible in the request list.
type BalanceRecord struct {
	UserID UserID

	// LeaveType is the leave-type CODE, not the ID.
	LeaveType   string
	BalanceDays decimal.Decimal
}

// =============================================================================
// USER
// =============================================================================

type User struct {
	ID     UserID
	Name   string
	Email  string
	Gender Gender

	CreatedAt time.Time
}
