package leave_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/leave/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newSeededStore(t *testing.T) *store.Memory {
	t.Helper()
	ctx := context.Background()
	m := store.NewMemory()

	if err := m.SaveUser(ctx, leave.User{ID: "u-ada", Name: "Ada", Gender: leave.GenderFemale}); err != nil {
		t.Fatalf("save user: %v", err)
	}
	for _, lt := range standardCatalog() {
		if err := m.SaveLeaveType(ctx, lt); err != nil {
			t.Fatalf("save leave type: %v", err)
		}
	}
	return m
}

func submitAnnual(t *testing.T, svc *leave.RequestService) *leave.LeaveRequest {
	t.Helper()
	req, err := svc.Submit(context.Background(), leave.SubmitInput{
		UserID:      "u-ada",
		LeaveTypeID: "lt-annual",
		StartDate:   leave.NewDate(2025, time.June, 2),
		EndDate:     leave.NewDate(2025, time.June, 6),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return req
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmit_ComputesWorkingDays(t *testing.T) {
	// GIVEN: A Monday-Friday request with no explicit total
	// WHEN: Submitting
	// THEN: TotalDays = 5 working days, status pending

	svc := leave.NewRequestService(newSeededStore(t))
	req := submitAnnual(t, svc)

	if !req.TotalDays.Equal(leave.DaysInt(5)) {
		t.Errorf("expected 5 total days, got %s", req.TotalDays)
	}
	if req.Status != leave.StatusPending {
		t.Errorf("expected pending, got %s", req.Status)
	}
	if req.ID == "" {
		t.Error("expected generated request id")
	}
}

func TestSubmit_ExplicitTotalOverridesComputation(t *testing.T) {
	// GIVEN: A half-day request spanning one weekday
	// THEN: The caller-supplied total is kept as-is

	svc := leave.NewRequestService(newSeededStore(t))
	req, err := svc.Submit(context.Background(), leave.SubmitInput{
		UserID:      "u-ada",
		LeaveTypeID: "lt-annual",
		StartDate:   leave.NewDate(2025, time.June, 2),
		EndDate:     leave.NewDate(2025, time.June, 2),
		TotalDays:   leave.Days(0.5),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !req.TotalDays.Equal(leave.Days(0.5)) {
		t.Errorf("expected 0.5 total days, got %s", req.TotalDays)
	}
}

func TestSubmit_WeekendOnlyRangeRejected(t *testing.T) {
	svc := leave.NewRequestService(newSeededStore(t))
	_, err := svc.Submit(context.Background(), leave.SubmitInput{
		UserID:      "u-ada",
		LeaveTypeID: "lt-annual",
		StartDate:   leave.NewDate(2025, time.June, 7),
		EndDate:     leave.NewDate(2025, time.June, 8),
	})
	if !errors.Is(err, leave.ErrEmptyRange) {
		t.Errorf("expected ErrEmptyRange, got %v", err)
	}
}

func TestSubmit_UnknownUser(t *testing.T) {
	svc := leave.NewRequestService(newSeededStore(t))
	_, err := svc.Submit(context.Background(), leave.SubmitInput{
		UserID:      "u-nobody",
		LeaveTypeID: "lt-annual",
		StartDate:   leave.NewDate(2025, time.June, 2),
		EndDate:     leave.NewDate(2025, time.June, 6),
	})
	if !errors.Is(err, leave.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSubmit_UnknownLeaveType(t *testing.T) {
	// Submission against a dangling type id is a hard error: the write
	// path must not manufacture the bad references the read path has to
	// tolerate.

	svc := leave.NewRequestService(newSeededStore(t))
	_, err := svc.Submit(context.Background(), leave.SubmitInput{
		UserID:      "u-ada",
		LeaveTypeID: "lt-ghost",
		StartDate:   leave.NewDate(2025, time.June, 2),
		EndDate:     leave.NewDate(2025, time.June, 6),
	})
	if !errors.Is(err, leave.ErrLeaveTypeNotFound) {
		t.Errorf("expected ErrLeaveTypeNotFound, got %v", err)
	}
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestApprove_RecordsDecision(t *testing.T) {
	svc := leave.NewRequestService(newSeededStore(t))
	req := submitAnnual(t, svc)

	approved, err := svc.Approve(context.Background(), req.ID, "mgr-1")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != leave.StatusApproved {
		t.Errorf("expected approved, got %s", approved.Status)
	}
	if approved.Decision == nil || approved.Decision.By != "mgr-1" {
		t.Errorf("expected decision by mgr-1, got %+v", approved.Decision)
	}
}

func TestReject_RecordsReason(t *testing.T) {
	svc := leave.NewRequestService(newSeededStore(t))
	req := submitAnnual(t, svc)

	rejected, err := svc.Reject(context.Background(), req.ID, "mgr-1", "overlapping team leave")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != leave.StatusRejected {
		t.Errorf("expected rejected, got %s", rejected.Status)
	}
	if rejected.Decision == nil || rejected.Decision.Note != "overlapping team leave" {
		t.Errorf("expected reason recorded, got %+v", rejected.Decision)
	}
}

func TestApprove_AlreadyDecided(t *testing.T) {
	// GIVEN: An already-approved request
	// WHEN: Approving again
	// THEN: TransitionError wrapping ErrInvalidTransition

	svc := leave.NewRequestService(newSeededStore(t))
	req := submitAnnual(t, svc)

	if _, err := svc.Approve(context.Background(), req.ID, "mgr-1"); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	_, err := svc.Approve(context.Background(), req.ID, "mgr-2")
	if !errors.Is(err, leave.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}

	var te *leave.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %T", err)
	}
	if te.From != leave.StatusApproved {
		t.Errorf("expected from=approved, got %s", te.From)
	}
}

func TestCancel_FromApproved(t *testing.T) {
	svc := leave.NewRequestService(newSeededStore(t))
	req := submitAnnual(t, svc)

	if _, err := svc.Approve(context.Background(), req.ID, "mgr-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	cancelled, err := svc.Cancel(context.Background(), req.ID, "u-ada")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != leave.StatusCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}
}

func TestCancel_FromRejectedFails(t *testing.T) {
	svc := leave.NewRequestService(newSeededStore(t))
	req := submitAnnual(t, svc)

	if _, err := svc.Reject(context.Background(), req.ID, "mgr-1", ""); err != nil {
		t.Fatalf("reject: %v", err)
	}
	_, err := svc.Cancel(context.Background(), req.ID, "u-ada")
	if !errors.Is(err, leave.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDecide_UnknownRequest(t *testing.T) {
	svc := leave.NewRequestService(newSeededStore(t))

	_, err := svc.Approve(context.Background(), "req-ghost", "mgr-1")
	if !errors.Is(err, leave.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
	if !leave.IsNotFound(err) {
		t.Error("IsNotFound should match")
	}
}

// =============================================================================
// DISTRIBUTION VIEW TESTS
// =============================================================================

func TestDistributionView_JoinsStoreData(t *testing.T) {
	// GIVEN: An approved annual request and a backend sick balance record
	// WHEN: Fetching the distribution for the user
	// THEN: used/remaining reflect the request, sick follows the record,
	//       and the total sums only reported balances for eligible types

	ctx := context.Background()
	m := newSeededStore(t)
	svc := leave.NewRequestService(m)

	req := submitAnnual(t, svc)
	if _, err := svc.Approve(ctx, req.ID, "mgr-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := m.UpsertBalance(ctx, leave.BalanceRecord{
		UserID: "u-ada", LeaveType: "sick", BalanceDays: leave.DaysInt(7),
	}); err != nil {
		t.Fatalf("upsert balance: %v", err)
	}

	dist, err := svc.Distribution(ctx, "u-ada", 2025)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}

	annual := entryByCode(t, *dist, "annual")
	if !annual.Used.Equal(leave.DaysInt(5)) {
		t.Errorf("annual used = %s", annual.Used)
	}
	if !annual.Remaining.Equal(leave.DaysInt(16)) {
		t.Errorf("annual remaining = %s", annual.Remaining)
	}

	sick := entryByCode(t, *dist, "sick")
	if !sick.Remaining.Equal(leave.DaysInt(7)) {
		t.Errorf("sick remaining = %s", sick.Remaining)
	}

	if !dist.RemainingLeaveDays.Equal(leave.DaysInt(7)) {
		t.Errorf("remaining total = %s", dist.RemainingLeaveDays)
	}
}

func TestDistributionView_UnknownUser(t *testing.T) {
	svc := leave.NewRequestService(newSeededStore(t))

	_, err := svc.Distribution(context.Background(), "u-nobody", 2025)
	if !errors.Is(err, leave.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
