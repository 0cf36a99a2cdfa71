// Package wfh implements work-from-home request management.
// WFH requests share the leave request lifecycle shape but carry no
// balance: there is nothing to allocate or deplete, only an approval
// workflow and a working-day count per request.
package wfh

import (
	"time"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// WFH REQUEST
// =============================================================================

type RequestID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Request is a work-from-home request for an inclusive date range.
type Request struct {
	ID     RequestID
	UserID leave.UserID

	StartDate leave.Date
	EndDate   leave.Date

	// WorkingDays is the weekend-excluded day count of the range,
	// computed once at submission.
	WorkingDays int

	Status Status

	// Set on approve/reject, nil while pending
	Decision *leave.Decision

	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
