package wfh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// STORE
// =============================================================================

// Store persists WFH requests. Soft transitions only; rows are never
// deleted.
type Store interface {
	SaveWFHRequest(ctx context.Context, req Request) error

	// GetWFHRequest returns nil (no error) when the request doesn't exist.
	GetWFHRequest(ctx context.Context, id RequestID) (*Request, error)

	// WFHRequestsByUser returns all of a user's requests, newest first.
	WFHRequestsByUser(ctx context.Context, userID leave.UserID) ([]Request, error)
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrRequestNotFound   = errors.New("wfh request not found")
	ErrInvalidTransition = errors.New("invalid wfh status transition")
)

// =============================================================================
// SERVICE
// =============================================================================

type Service struct {
	Store Store
}

func NewService(store Store) *Service {
	return &Service{Store: store}
}

// Submit stores a new pending WFH request. The working-day count uses
// the shared counter; a weekend-only or reversed range yields zero days
// and is still accepted (the UI shows "0 working days" rather than an
// error, matching the leave side's silent-zero behavior).
func (s *Service) Submit(ctx context.Context, userID leave.UserID, start, end leave.Date, reason string) (*Request, error) {
	now := time.Now()
	req := Request{
		ID:          RequestID(uuid.NewString()),
		UserID:      userID,
		StartDate:   start,
		EndDate:     end,
		WorkingDays: leave.WorkingDays(start, end),
		Status:      StatusPending,
		Reason:      reason,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.SaveWFHRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("save wfh request: %w", err)
	}
	return &req, nil
}

// Approve flips a pending request to approved.
func (s *Service) Approve(ctx context.Context, id RequestID, approverID string) (*Request, error) {
	return s.decide(ctx, id, StatusApproved, approverID, "")
}

// Reject flips a pending request to rejected.
func (s *Service) Reject(ctx context.Context, id RequestID, rejecterID, reason string) (*Request, error) {
	return s.decide(ctx, id, StatusRejected, rejecterID, reason)
}

// Cancel soft-cancels a pending or approved request.
func (s *Service) Cancel(ctx context.Context, id RequestID, actorID string) (*Request, error) {
	req, err := s.Store.GetWFHRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load wfh request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != StatusPending && req.Status != StatusApproved {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidTransition, id, req.Status)
	}

	now := time.Now()
	req.Status = StatusCancelled
	req.Decision = &leave.Decision{By: actorID, At: now, Note: "cancelled"}
	req.UpdatedAt = now

	if err := s.Store.SaveWFHRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("save wfh request: %w", err)
	}
	return req, nil
}

func (s *Service) decide(ctx context.Context, id RequestID, to Status, actorID, note string) (*Request, error) {
	req, err := s.Store.GetWFHRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load wfh request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != StatusPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidTransition, id, req.Status)
	}

	now := time.Now()
	req.Status = to
	req.Decision = &leave.Decision{By: actorID, At: now, Note: note}
	req.UpdatedAt = now

	if err := s.Store.SaveWFHRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("save wfh request: %w", err)
	}
	return req, nil
}
