/*
service.go - Leave request lifecycle

PURPOSE:
  Orchestrates the full lifecycle of leave requests:
  1. Submission: compute working days, create as pending
  2. Approval/Rejection: decision metadata, status flip
  3. Cancellation: soft transition, row never deleted

REQUEST FLOW:
  pending ──approve──▶ approved ──cancel──▶ cancelled
     │
     ├──reject──▶ rejected
     └──cancel──▶ cancelled

  Only pending requests can be approved or rejected. Cancellation is
  allowed from pending and approved (users take back time off); the
  distribution computation stops counting the request the moment it
  leaves approved/pending.

SEE ALSO:
  - distribution.go: Consumes the requests this service writes
  - store.go: Persistence interfaces
*/
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// REQUEST SERVICE
// =============================================================================

type RequestService struct {
	Store Store
}

func NewRequestService(store Store) *RequestService {
	return &RequestService{Store: store}
}

// SubmitInput is the caller's view of a new request.
type SubmitInput struct {
	UserID      UserID
	LeaveTypeID LeaveTypeID
	StartDate   Date
	EndDate     Date

	// TotalDays overrides the computed working-day count when positive
	// (half days, backend-specified totals). Zero means "compute it".
	TotalDays decimal.Decimal

	Reason string
}

// Submit validates and stores a new pending leave request.
//
// Unlike the distribution computation, submission against an unknown
// leave type is a hard error: silently accepting a dangling reference
// would manufacture exactly the bad data the read path has to tolerate.
func (rs *RequestService) Submit(ctx context.Context, in SubmitInput) (*LeaveRequest, error) {
	user, err := rs.Store.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	lt, err := rs.Store.GetLeaveType(ctx, in.LeaveTypeID)
	if err != nil {
		return nil, fmt.Errorf("load leave type: %w", err)
	}
	if lt == nil {
		return nil, ErrLeaveTypeNotFound
	}

	totalDays := in.TotalDays
	if !totalDays.IsPositive() {
		working := WorkingDays(in.StartDate, in.EndDate)
		if working == 0 {
			return nil, ErrEmptyRange
		}
		totalDays = DaysInt(working)
	}

	now := time.Now()
	req := LeaveRequest{
		ID:          RequestID(uuid.NewString()),
		UserID:      in.UserID,
		LeaveTypeID: in.LeaveTypeID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		TotalDays:   totalDays,
		Status:      StatusPending,
		Reason:      in.Reason,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := rs.Store.SaveRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("save request: %w", err)
	}
	return &req, nil
}

// Approve flips a pending request to approved with decision metadata.
func (rs *RequestService) Approve(ctx context.Context, id RequestID, approverID string) (*LeaveRequest, error) {
	return rs.decide(ctx, id, StatusApproved, approverID, "")
}

// Reject flips a pending request to rejected with the reason recorded.
func (rs *RequestService) Reject(ctx context.Context, id RequestID, rejecterID, reason string) (*LeaveRequest, error) {
	return rs.decide(ctx, id, StatusRejected, rejecterID, reason)
}

func (rs *RequestService) decide(ctx context.Context, id RequestID, to RequestStatus, actorID, note string) (*LeaveRequest, error) {
	req, err := rs.Store.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != StatusPending {
		return nil, &TransitionError{RequestID: id, From: req.Status, To: to}
	}

	now := time.Now()
	req.Status = to
	req.Decision = &Decision{By: actorID, At: now, Note: note}
	req.UpdatedAt = now

	if err := rs.Store.SaveRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("save request: %w", err)
	}
	return req, nil
}

// Cancel soft-cancels a pending or approved request.
func (rs *RequestService) Cancel(ctx context.Context, id RequestID, actorID string) (*LeaveRequest, error) {
	req, err := rs.Store.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != StatusPending && req.Status != StatusApproved {
		return nil, &TransitionError{RequestID: id, From: req.Status, To: StatusCancelled}
	}

	now := time.Now()
	req.Status = StatusCancelled
	req.Decision = &Decision{By: actorID, At: now, Note: "cancelled"}
	req.UpdatedAt = now

	if err := rs.Store.SaveRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("save request: %w", err)
	}
	return req, nil
}

// =============================================================================
// DISTRIBUTION VIEW - Joins the three inputs and computes
// =============================================================================

// Distribution fetches the user's gender, the leave types, the user's
// requests and balance records, and runs the distribution computation.
// year == 0 means the current calendar year.
func (rs *RequestService) Distribution(ctx context.Context, userID UserID, year int) (*Distribution, error) {
	user, err := rs.Store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	types, err := rs.Store.ListLeaveTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leave types: %w", err)
	}

	requests, err := rs.Store.RequestsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	balances, err := rs.Store.BalancesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}

	dist := ComputeDistribution(DistributionInput{
		Gender:         user.Gender,
		LeaveTypes:     types,
		Requests:       requests,
		BalanceRecords: balances,
		Year:           year,
	})
	return &dist, nil
}
