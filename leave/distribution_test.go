package leave_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func standardCatalog() []leave.LeaveType {
	return []leave.LeaveType{
		{ID: "lt-annual", Code: "annual", Description: "Annual Leave", DefaultAllocationDays: leave.DaysInt(21)},
		{ID: "lt-sick", Code: "sick", Description: "Sick Leave", DefaultAllocationDays: leave.DaysInt(10)},
		{ID: "lt-maternity", Code: "maternity", Description: "Maternity Leave", DefaultAllocationDays: leave.DaysInt(90)},
		{ID: "lt-paternity", Code: "paternity", Description: "Paternity Leave", DefaultAllocationDays: leave.DaysInt(10)},
	}
}

func approvedRequest(typeID leave.LeaveTypeID, start leave.Date, days int) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:          leave.RequestID("req-" + string(typeID) + "-" + start.String()),
		UserID:      "u-1",
		LeaveTypeID: typeID,
		StartDate:   start,
		EndDate:     start.AddDays(days - 1),
		TotalDays:   leave.DaysInt(days),
		Status:      leave.StatusApproved,
	}
}

func entryByCode(t *testing.T, d leave.Distribution, code string) leave.DistributionEntry {
	t.Helper()
	for _, e := range d.Entries {
		if e.Code == code {
			return e
		}
	}
	t.Fatalf("no entry for code %q", code)
	return leave.DistributionEntry{}
}

// =============================================================================
// USED / REMAINING ACCUMULATION
// =============================================================================

func TestDistribution_UsedSumsApprovedAndPending(t *testing.T) {
	// GIVEN: One approved (5d) and one pending (2d) annual request this year
	// WHEN: Computing the distribution
	// THEN: used=7, remaining=21-7=14 (no backend record)

	year := 2025
	pending := approvedRequest("lt-annual", leave.NewDate(2025, time.August, 4), 2)
	pending.Status = leave.StatusPending

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderFemale,
		LeaveTypes: standardCatalog(),
		Requests: []leave.LeaveRequest{
			approvedRequest("lt-annual", leave.NewDate(2025, time.March, 3), 5),
			pending,
		},
		Year: year,
	})

	annual := entryByCode(t, dist, "annual")
	assert.True(t, annual.Used.Equal(leave.DaysInt(7)), "used = %s", annual.Used)
	assert.True(t, annual.Remaining.Equal(leave.DaysInt(14)), "remaining = %s", annual.Remaining)
}

func TestDistribution_RejectedAndCancelledExcluded(t *testing.T) {
	// GIVEN: Rejected and cancelled requests only
	// THEN: used stays zero

	rejected := approvedRequest("lt-annual", leave.NewDate(2025, time.March, 3), 5)
	rejected.Status = leave.StatusRejected
	cancelled := approvedRequest("lt-annual", leave.NewDate(2025, time.April, 7), 3)
	cancelled.Status = leave.StatusCancelled

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderMale,
		LeaveTypes: standardCatalog(),
		Requests:   []leave.LeaveRequest{rejected, cancelled},
		Year:       2025,
	})

	annual := entryByCode(t, dist, "annual")
	assert.True(t, annual.Used.IsZero(), "used = %s", annual.Used)
	assert.True(t, annual.Remaining.Equal(leave.DaysInt(21)))
}

func TestDistribution_YearScopedByStartDate(t *testing.T) {
	// GIVEN: A request starting in the previous year
	// WHEN: Computing for 2025
	// THEN: It does not count, even if it would spill into 2025

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderMale,
		LeaveTypes: standardCatalog(),
		Requests: []leave.LeaveRequest{
			approvedRequest("lt-annual", leave.NewDate(2024, time.December, 30), 5),
		},
		Year: 2025,
	})

	annual := entryByCode(t, dist, "annual")
	assert.True(t, annual.Used.IsZero(), "used = %s", annual.Used)
}

func TestDistribution_UnknownTypeReferenceSkipped(t *testing.T) {
	// GIVEN: A request referencing a leave type not in the catalog
	// WHEN: Computing the distribution
	// THEN: The request is silently ignored; no panic, no extra entry

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderFemale,
		LeaveTypes: standardCatalog(),
		Requests: []leave.LeaveRequest{
			approvedRequest("lt-ghost", leave.NewDate(2025, time.March, 3), 5),
		},
		Year: 2025,
	})

	require.Len(t, dist.Entries, 4)
	for _, e := range dist.Entries {
		assert.True(t, e.Used.IsZero(), "entry %s used = %s", e.Code, e.Used)
	}
}

// =============================================================================
// BACKEND BALANCE OVERRIDE
// =============================================================================

func TestDistribution_BackendRecordWins(t *testing.T) {
	// GIVEN: used=5 against annual (21), but a backend record says 3 remain
	// WHEN: Computing the distribution
	// THEN: remaining=3, not 16 — the record is authoritative

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderFemale,
		LeaveTypes: standardCatalog(),
		Requests: []leave.LeaveRequest{
			approvedRequest("lt-annual", leave.NewDate(2025, time.March, 3), 5),
		},
		BalanceRecords: []leave.BalanceRecord{
			{UserID: "u-1", LeaveType: "annual", BalanceDays: leave.DaysInt(3)},
		},
		Year: 2025,
	})

	annual := entryByCode(t, dist, "annual")
	assert.True(t, annual.Remaining.Equal(leave.DaysInt(3)), "remaining = %s", annual.Remaining)
	assert.True(t, annual.Used.Equal(leave.DaysInt(5)), "used stays derived: %s", annual.Used)
}

func TestDistribution_FirstRecordWinsOnDuplicateCode(t *testing.T) {
	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderMale,
		LeaveTypes: standardCatalog(),
		BalanceRecords: []leave.BalanceRecord{
			{UserID: "u-1", LeaveType: "sick", BalanceDays: leave.DaysInt(8)},
			{UserID: "u-1", LeaveType: "sick", BalanceDays: leave.DaysInt(2)},
		},
		Year: 2025,
	})

	sick := entryByCode(t, dist, "sick")
	assert.True(t, sick.Remaining.Equal(leave.DaysInt(8)), "remaining = %s", sick.Remaining)
}

// =============================================================================
// GENDER ELIGIBILITY
// =============================================================================

func TestDistribution_MaternityIneligibleForMale(t *testing.T) {
	// GIVEN: A male employee with a backend maternity balance record
	// WHEN: Computing the distribution
	// THEN: The maternity entry is flagged ineligible and its balance is
	//       excluded from the remaining-days total

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderMale,
		LeaveTypes: standardCatalog(),
		BalanceRecords: []leave.BalanceRecord{
			{UserID: "u-1", LeaveType: "maternity", BalanceDays: leave.DaysInt(90)},
			{UserID: "u-1", LeaveType: "annual", BalanceDays: leave.DaysInt(21)},
		},
		Year: 2025,
	})

	maternity := entryByCode(t, dist, "maternity")
	assert.False(t, maternity.IsEligible)
	paternity := entryByCode(t, dist, "paternity")
	assert.True(t, paternity.IsEligible)

	// Only the annual record counts toward the total.
	assert.True(t, dist.RemainingLeaveDays.Equal(leave.DaysInt(21)),
		"remaining total = %s", dist.RemainingLeaveDays)
}

func TestDistribution_PaternityIneligibleForFemale(t *testing.T) {
	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderFemale,
		LeaveTypes: standardCatalog(),
		Year:       2025,
	})

	assert.False(t, entryByCode(t, dist, "paternity").IsEligible)
	assert.True(t, entryByCode(t, dist, "maternity").IsEligible)
	assert.True(t, entryByCode(t, dist, "annual").IsEligible)
	assert.True(t, entryByCode(t, dist, "sick").IsEligible)
}

func TestDistribution_UnknownGenderIneligibleForBoth(t *testing.T) {
	// GIVEN: An employee whose gender was never recorded
	// THEN: Neither maternity nor paternity is eligible

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     "",
		LeaveTypes: standardCatalog(),
		Year:       2025,
	})

	assert.False(t, entryByCode(t, dist, "maternity").IsEligible)
	assert.False(t, entryByCode(t, dist, "paternity").IsEligible)
	assert.True(t, entryByCode(t, dist, "annual").IsEligible)
}

// =============================================================================
// PERCENTAGE
// =============================================================================

func TestDistribution_PercentageUsed(t *testing.T) {
	// GIVEN: annual 21 allocated, 5 used
	// THEN: percentage = 5/21*100 ≈ 23.81

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderFemale,
		LeaveTypes: standardCatalog(),
		Requests: []leave.LeaveRequest{
			approvedRequest("lt-annual", leave.NewDate(2025, time.March, 3), 5),
		},
		Year: 2025,
	})

	annual := entryByCode(t, dist, "annual")
	pct, _ := annual.PercentageUsed.Float64()
	assert.InDelta(t, 23.8095, pct, 0.001)
}

func TestDistribution_PercentageZeroWhenNothingAllocated(t *testing.T) {
	// GIVEN: A type with zero allocation and no usage
	// THEN: percentage is 0, not NaN and not a panic

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender: leave.GenderMale,
		LeaveTypes: []leave.LeaveType{
			{ID: "lt-unpaid", Code: "unpaid", Description: "Unpaid Leave", DefaultAllocationDays: decimal.Zero},
		},
		Year: 2025,
	})

	unpaid := entryByCode(t, dist, "unpaid")
	assert.True(t, unpaid.PercentageUsed.IsZero())
}

func TestDistribution_PercentageWithBackendRecord(t *testing.T) {
	// GIVEN: used=5 and backend says 3 remain
	// THEN: percentage = 5/(5+3)*100 = 62.5

	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderFemale,
		LeaveTypes: standardCatalog(),
		Requests: []leave.LeaveRequest{
			approvedRequest("lt-annual", leave.NewDate(2025, time.March, 3), 5),
		},
		BalanceRecords: []leave.BalanceRecord{
			{UserID: "u-1", LeaveType: "annual", BalanceDays: leave.DaysInt(3)},
		},
		Year: 2025,
	})

	annual := entryByCode(t, dist, "annual")
	pct, _ := annual.PercentageUsed.Float64()
	assert.InDelta(t, 62.5, pct, 0.0001)
}

// =============================================================================
// SHAPE AND DETERMINISM
// =============================================================================

func TestDistribution_OneEntryPerTypeInCatalogOrder(t *testing.T) {
	dist := leave.ComputeDistribution(leave.DistributionInput{
		Gender:     leave.GenderFemale,
		LeaveTypes: standardCatalog(),
		Year:       2025,
	})

	require.Len(t, dist.Entries, 4)
	codes := make([]string, len(dist.Entries))
	for i, e := range dist.Entries {
		codes[i] = e.Code
	}
	assert.Equal(t, []string{"annual", "sick", "maternity", "paternity"}, codes)
}

func TestDistribution_Deterministic(t *testing.T) {
	// GIVEN: The same inputs
	// WHEN: Computed twice
	// THEN: The outputs match exactly

	in := leave.DistributionInput{
		Gender:     leave.GenderFemale,
		LeaveTypes: standardCatalog(),
		Requests: []leave.LeaveRequest{
			approvedRequest("lt-annual", leave.NewDate(2025, time.March, 3), 5),
			approvedRequest("lt-sick", leave.NewDate(2025, time.April, 7), 2),
		},
		BalanceRecords: []leave.BalanceRecord{
			{UserID: "u-1", LeaveType: "annual", BalanceDays: leave.DaysInt(10)},
		},
		Year: 2025,
	}

	first := leave.ComputeDistribution(in)
	second := leave.ComputeDistribution(in)

	require.Len(t, second.Entries, len(first.Entries))
	for i := range first.Entries {
		a, b := first.Entries[i], second.Entries[i]
		assert.Equal(t, a.Code, b.Code)
		assert.True(t, a.Used.Equal(b.Used))
		assert.True(t, a.Remaining.Equal(b.Remaining))
		assert.True(t, a.PercentageUsed.Equal(b.PercentageUsed))
		assert.Equal(t, a.IsEligible, b.IsEligible)
	}
	assert.True(t, first.RemainingLeaveDays.Equal(second.RemainingLeaveDays))
}

func TestDistribution_EmptyInputs(t *testing.T) {
	// GIVEN: No types, no requests, no records
	// THEN: Empty entries, zero total, no error paths at all

	dist := leave.ComputeDistribution(leave.DistributionInput{Gender: leave.GenderMale, Year: 2025})

	assert.Empty(t, dist.Entries)
	assert.True(t, dist.RemainingLeaveDays.IsZero())
}
